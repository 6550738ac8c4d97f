package modelgenerator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/prompt"
	"ai-fashion-hub/modules/workspace"
)

// 입력 검증 에러 (네트워크 호출 전)
var (
	ErrMissingInputs   = errors.New("세 가지 요소를 모두 업로드해주세요: 신발, 얼굴, 모델")
	ErrTooManyShoes    = fmt.Errorf("신발 이미지는 최대 %d장까지 업로드할 수 있습니다.", MaxShoeImages)
	ErrModelNotFound   = errors.New("보정할 이미지를 선택해주세요.")
	ErrFaceMissing     = errors.New("얼굴 이미지가 없습니다. 캠페인을 먼저 생성해주세요.")
	ErrUnknownPose     = errors.New("unknown pose preset")
	ErrJobNotFound     = errors.New("job not found")
	ErrJobInputMissing = errors.New("job input missing")
	ErrCampaignRunning = errors.New("진행 중인 캠페인 작업이 있습니다. 완료 후 다시 시도해주세요.")
)

// ImageGenerator - 이미지 생성 (gemini.Client)
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error)
}

type Service struct {
	generator  ImageGenerator
	workspaces *workspace.Manager
	now        func() time.Time
}

// NewService - 생성기와 워크스페이스 매니저로 서비스 생성
func NewService(generator ImageGenerator, workspaces *workspace.Manager) *Service {
	return &Service{
		generator:  generator,
		workspaces: workspaces,
		now:        time.Now,
	}
}

// generate - 프롬프트 먼저, 3:4 요청 후 830x1106 크롭 (실패하면 원본)
func (s *Service) generate(ctx context.Context, promptText string, images []gemini.Image) (string, error) {
	url, err := s.generator.GenerateImage(ctx, gemini.ImageRequest{
		Prompt:      promptText,
		Images:      images,
		Layout:      gemini.PromptFirst,
		AspectRatio: prompt.CampaignAspectRatio,
	})
	if err != nil {
		return "", err
	}
	return utils.EnforceAspectDataURL(url, prompt.CampaignWidth, prompt.CampaignHeight), nil
}

// Synthesize - 타깃 샷 + 얼굴 + 신발 합성
func (s *Service) Synthesize(ctx context.Context, target, face gemini.Image, shoes []gemini.Image) (string, error) {
	images := append([]gemini.Image{target, face}, shoes...)
	return s.generate(ctx, prompt.CampaignSynthesis(), images)
}

func validateCampaign(req CampaignRequest) error {
	if len(req.Shoes) == 0 || req.Face == nil || len(req.Models) == 0 {
		return ErrMissingInputs
	}
	if len(req.Shoes) > MaxShoeImages {
		return ErrTooManyShoes
	}
	for _, img := range append(append([]model.UploadedImage{*req.Face}, req.Shoes...), req.Models...) {
		if _, err := gemini.ImageFromUpload(img); err != nil {
			return err
		}
	}
	return nil
}

// staleJobAfter - 이 시간 동안 갱신이 없는 진행 중 작업은 새 캠페인을 막지 않음
const staleJobAfter = 15 * time.Minute

// activeJob - 세션에서 아직 진행 중인 작업
func activeJob(ws *workspace.Workspace, now time.Time) *model.CampaignJob {
	for _, job := range ws.Jobs {
		if job.Done() || now.Sub(job.UpdatedAt) > staleJobAfter {
			continue
		}
		return job
	}
	return nil
}

// SubmitCampaign - 입력 검증 후 pending 작업 생성. 이전 결과는 비움
// 같은 세션에 진행 중인 작업이 있으면 ErrCampaignRunning
func (s *Service) SubmitCampaign(ctx context.Context, sessionID string, req CampaignRequest) (*model.CampaignJob, error) {
	if err := validateCampaign(req); err != nil {
		return nil, err
	}

	now := s.now()
	job := &model.CampaignJob{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Status:    model.StatusPending,
		Total:     len(req.Models),
		Results:   []model.GeneratedModel{},
		CreatedAt: now,
		UpdatedAt: now,
		Input: &model.CampaignInput{
			Shoes:  req.Shoes,
			Face:   req.Face,
			Models: req.Models,
		},
	}

	_, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		if running := activeJob(ws, now); running != nil {
			log.Printf("⚠️  [ModelGenerator] Job %s still running in session %s", running.ID, sessionID)
			return ErrCampaignRunning
		}
		ws.Uploads[workspace.SlotShoes] = req.Shoes
		ws.Uploads[workspace.SlotFace] = []model.UploadedImage{*req.Face}
		ws.Uploads[workspace.SlotModels] = req.Models
		ws.Models = []model.GeneratedModel{}
		ws.Jobs[job.ID] = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📥 [ModelGenerator] Job %s created: %d models, %d shoes", job.ID, job.Total, len(req.Shoes))
	return job, nil
}

// Job - 작업 조회 (입력 이미지는 제외)
func (s *Service) Job(ctx context.Context, sessionID, jobID string) (*model.CampaignJob, error) {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	job, ok := ws.Jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	view := *job
	view.Input = nil
	return &view, nil
}

func (s *Service) updateJob(ctx context.Context, sessionID, jobID string, fn func(ws *workspace.Workspace, job *model.CampaignJob)) error {
	_, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		job, ok := ws.Jobs[jobID]
		if !ok {
			return ErrJobNotFound
		}
		fn(ws, job)
		job.UpdatedAt = s.now()
		return nil
	})
	return err
}

// ProcessJob - 모델 이미지 한 장씩 순차 합성. 첫 실패에서 중단하고 그때까지의 결과는 유지
func (s *Service) ProcessJob(ctx context.Context, sessionID, jobID string) error {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	job, ok := ws.Jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	if job.Input == nil || job.Input.Face == nil {
		return ErrJobInputMissing
	}

	log.Printf("🚀 [ModelGenerator] Processing job %s (%d models)", jobID, job.Total)

	face, err := gemini.ImageFromUpload(*job.Input.Face)
	if err != nil {
		return s.failJob(ctx, sessionID, jobID, err)
	}
	shoes, err := gemini.ImagesFromUploads(job.Input.Shoes)
	if err != nil {
		return s.failJob(ctx, sessionID, jobID, err)
	}
	targets := job.Input.Models

	if err := s.updateJob(ctx, sessionID, jobID, func(_ *workspace.Workspace, job *model.CampaignJob) {
		job.Status = model.StatusProcessing
	}); err != nil {
		return err
	}

	for i, upload := range targets {
		if err := s.updateJob(ctx, sessionID, jobID, func(_ *workspace.Workspace, job *model.CampaignJob) {
			job.Current = i + 1
		}); err != nil {
			return err
		}
		log.Printf("🎨 [ModelGenerator] %d/%d 컷 생성 중 (job %s)", i+1, len(targets), jobID)

		target, err := gemini.ImageFromUpload(upload)
		if err != nil {
			return s.failJob(ctx, sessionID, jobID, err)
		}
		url, err := s.Synthesize(ctx, target, face, shoes)
		if err != nil {
			return s.failJob(ctx, sessionID, jobID, err)
		}

		generated := model.GeneratedModel{
			ID:   fmt.Sprintf("campaign-%d-%d", s.now().UnixMilli(), i),
			URL:  url,
			Type: model.GeneratedCampaign,
		}
		if err := s.updateJob(ctx, sessionID, jobID, func(ws *workspace.Workspace, job *model.CampaignJob) {
			job.Results = append(job.Results, generated)
			ws.Models = append(ws.Models, generated)
		}); err != nil {
			return err
		}
	}

	err = s.updateJob(ctx, sessionID, jobID, func(_ *workspace.Workspace, job *model.CampaignJob) {
		job.Status = model.StatusCompleted
		job.Input = nil
	})
	if err == nil {
		log.Printf("✅ [ModelGenerator] Job %s completed", jobID)
	}
	return err
}

// CancelJob - 큐 등록에 실패한 작업을 실패로 기록
func (s *Service) CancelJob(ctx context.Context, sessionID, jobID string, cause error) {
	if err := s.updateJob(ctx, sessionID, jobID, func(_ *workspace.Workspace, job *model.CampaignJob) {
		job.Status = model.StatusFailed
		job.Errors = append(job.Errors, cause.Error())
		job.Input = nil
	}); err != nil {
		log.Printf("⚠️  [ModelGenerator] Failed to cancel job %s: %v", jobID, err)
	}
}

func (s *Service) failJob(ctx context.Context, sessionID, jobID string, cause error) error {
	msg := gemini.FriendlyMessage(cause, "캠페인 생성 실패")
	log.Printf("❌ [ModelGenerator] Job %s failed: %s", jobID, msg)
	if err := s.updateJob(ctx, sessionID, jobID, func(_ *workspace.Workspace, job *model.CampaignJob) {
		job.Status = model.StatusFailed
		job.Errors = append(job.Errors, msg)
		job.Input = nil
	}); err != nil {
		return err
	}
	return cause
}

// Refine - 선택한 결과를 필름 스캐너 스타일로 보정. 같은 id로 url만 교체
func (s *Service) Refine(ctx context.Context, sessionID, modelID string) (model.GeneratedModel, error) {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return model.GeneratedModel{}, err
	}
	idx := ws.FindModel(modelID)
	if idx < 0 {
		return model.GeneratedModel{}, ErrModelNotFound
	}
	current, err := gemini.ImageFromDataURL(ws.Models[idx].URL)
	if err != nil {
		return model.GeneratedModel{}, err
	}
	shoes, err := gemini.ImagesFromUploads(ws.Uploads[workspace.SlotShoes])
	if err != nil {
		return model.GeneratedModel{}, err
	}

	url, err := s.generate(ctx, prompt.Refine(), append([]gemini.Image{current}, shoes...))
	if err != nil {
		return model.GeneratedModel{}, err
	}

	var refined model.GeneratedModel
	_, err = s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		i := ws.FindModel(modelID)
		if i < 0 {
			return ErrModelNotFound
		}
		ws.Models[i].URL = url
		refined = ws.Models[i]
		return nil
	})
	return refined, err
}

// PoseVariation - 현재 결과를 프리셋 포즈로 재생성, 목록 맨 앞에 추가
func (s *Service) PoseVariation(ctx context.Context, sessionID, modelID, poseID string) (model.GeneratedModel, error) {
	pose, ok := prompt.PosePreset(poseID)
	if !ok {
		return model.GeneratedModel{}, ErrUnknownPose
	}
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return model.GeneratedModel{}, err
	}
	idx := ws.FindModel(modelID)
	if idx < 0 {
		return model.GeneratedModel{}, ErrModelNotFound
	}
	faces := ws.Uploads[workspace.SlotFace]
	if len(faces) == 0 {
		return model.GeneratedModel{}, ErrFaceMissing
	}

	current, err := gemini.ImageFromDataURL(ws.Models[idx].URL)
	if err != nil {
		return model.GeneratedModel{}, err
	}
	face, err := gemini.ImageFromUpload(faces[0])
	if err != nil {
		return model.GeneratedModel{}, err
	}
	shoes, err := gemini.ImagesFromUploads(ws.Uploads[workspace.SlotShoes])
	if err != nil {
		return model.GeneratedModel{}, err
	}

	log.Printf("🎨 [ModelGenerator] '%s' 포즈로 재생성 중", pose.Label)
	url, err := s.generate(ctx, prompt.PoseVariation(pose.Prompt), append([]gemini.Image{current, face}, shoes...))
	if err != nil {
		return model.GeneratedModel{}, err
	}

	generated := model.GeneratedModel{
		ID:   fmt.Sprintf("pose-%s-%d", pose.ID, s.now().UnixMilli()),
		URL:  url,
		Type: model.GeneratedPoseVariation,
	}
	_, err = s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		ws.Models = append([]model.GeneratedModel{generated}, ws.Models...)
		return nil
	})
	return generated, err
}

// Models - 세션의 생성 결과
func (s *Service) Models(ctx context.Context, sessionID string) ([]model.GeneratedModel, error) {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ws.Models, nil
}

// Reset - 생성 결과와 업로드 초기화
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	_, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		ws.Reset()
		return nil
	})
	return err
}
