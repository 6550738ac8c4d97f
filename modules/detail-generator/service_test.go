package detailgenerator

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
	"ai-fashion-hub/modules/prompt"
	"ai-fashion-hub/modules/workspace"
)

func names(images []model.UploadedImage) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.Name)
	}
	return out
}

func TestSortByNumberInName(t *testing.T) {
	in := []model.UploadedImage{
		{Name: "cover.png"},
		{Name: "shoe_10.png"},
		{Name: "shoe_2.png"},
		{Name: "back.png"},
		{Name: "1-front.jpg"},
		{Name: "img2b.png"},
	}
	sorted := SortByNumberInName(in)
	assert.Equal(t, []string{"1-front.jpg", "shoe_2.png", "img2b.png", "shoe_10.png", "cover.png", "back.png"}, names(sorted))
	assert.Equal(t, "cover.png", in[0].Name, "입력 슬라이스는 그대로")
}

func TestOnlyImages(t *testing.T) {
	imgs := onlyImages([]model.UploadedImage{
		{Name: "a.png", MimeType: "image/png"},
		{Name: "b.pdf", MimeType: "application/pdf"},
		{Name: "c", Base64: "data:image/jpeg;base64,AAAA"},
		{Name: "d", Base64: "data:text/plain;base64,AAAA"},
	})
	assert.Equal(t, []string{"a.png", "c"}, names(imgs))
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("검증", func(t *testing.T) {
		svc, gen, _ := newTestService(t)
		_, err := svc.Generate(ctx, "s1", GenerateRequest{Mode: "unknown", Products: []model.UploadedImage{upload(t, "1.png")}})
		require.ErrorIs(t, err, ErrUnknownMode)

		_, err = svc.Generate(ctx, "s1", GenerateRequest{Mode: ModeOriginal})
		require.ErrorIs(t, err, ErrNoProducts)

		_, err = svc.Generate(ctx, "s1", GenerateRequest{Mode: ModeOriginal, Products: []model.UploadedImage{{Name: "x.pdf", MimeType: "application/pdf"}}})
		require.ErrorIs(t, err, ErrNoProducts)

		_, err = svc.Generate(ctx, "s1", GenerateRequest{Mode: ModeStudio, Products: []model.UploadedImage{upload(t, "1.png")}})
		require.ErrorIs(t, err, ErrNoModels)
		assert.Empty(t, gen.calls)
	})

	t.Run("original: 정렬된 제품 + 모델 최대 5장", func(t *testing.T) {
		svc, gen, mgr := newTestService(t)
		req := GenerateRequest{
			Mode:     ModeOriginal,
			Products: []model.UploadedImage{upload(t, "p3.png"), upload(t, "p1.png"), upload(t, "p2.png")},
		}
		for i := 0; i < 7; i++ {
			req.Models = append(req.Models, upload(t, "m.png"))
		}
		resp, err := svc.Generate(ctx, "s1", req)
		require.NoError(t, err)
		require.Len(t, resp.Items, 3+MaxOriginalModels)
		assert.Equal(t, "p1.png", resp.Items[0].Title)
		assert.Equal(t, "p2.png", resp.Items[1].Title)
		assert.Equal(t, "p3.png", resp.Items[2].Title)
		for _, it := range resp.Items {
			assert.Equal(t, content.KindImage, it.Kind)
			assert.True(t, strings.HasPrefix(it.Payload, "data:image/png;base64,"))
		}
		assert.Nil(t, resp.Info)
		assert.Empty(t, gen.calls)
		assert.Zero(t, gen.jsonCalls)

		ws, err := mgr.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 8, ws.Items.Len())
		assert.Equal(t, []string{"p1.png", "p2.png", "p3.png"}, names(ws.Uploads[workspace.SlotProduct]))
	})

	t.Run("original: 자동 채우기", func(t *testing.T) {
		svc, gen, _ := newTestService(t)
		resp, err := svc.Generate(ctx, "s1", GenerateRequest{
			Mode:     ModeOriginal,
			Products: []model.UploadedImage{upload(t, "1.png")},
			Autofill: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, gen.jsonCalls)
		require.NotNil(t, resp.Info)
		assert.Equal(t, "Derby", resp.Info.ProductName)

		var sectionTypes []string
		for _, it := range resp.Items[1:] {
			assert.Equal(t, content.KindSection, it.Kind)
			sectionTypes = append(sectionTypes, it.SectionType)
		}
		assert.Equal(t, []string{"info", "intro", "tech", "care"}, sectionTypes)
	})

	t.Run("original: 분석 실패", func(t *testing.T) {
		svc, gen, mgr := newTestService(t)
		gen.jsonErr = gemini.ErrInvalidJSON
		_, err := svc.Generate(ctx, "s1", GenerateRequest{
			Mode:     ModeOriginal,
			Products: []model.UploadedImage{upload(t, "1.png")},
			Autofill: true,
		})
		require.ErrorIs(t, err, gemini.ErrInvalidJSON)

		ws, err := mgr.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Zero(t, ws.Items.Len())
	})

	t.Run("studio: 레퍼런스마다 한 장", func(t *testing.T) {
		svc, gen, mgr := newTestService(t)
		resp, err := svc.Generate(ctx, "s1", GenerateRequest{
			Mode:     ModeStudio,
			Products: []model.UploadedImage{upload(t, "2.png"), upload(t, "1.png")},
			Models:   []model.UploadedImage{upload(t, "ref-a.png"), upload(t, "ref-b.png")},
		})
		require.NoError(t, err)
		require.Len(t, gen.calls, 2)
		for _, call := range gen.calls {
			assert.Equal(t, prompt.StudioModel(), call.Prompt)
			assert.Equal(t, gemini.PromptFirst, call.Layout)
			assert.Equal(t, prompt.CampaignAspectRatio, call.AspectRatio)
			assert.Len(t, call.Images, 3)
		}

		require.Len(t, resp.Models, 2)
		assert.Equal(t, "detail-1700000000000-0", resp.Models[0].ID)
		assert.Equal(t, "detail-1700000000000-1", resp.Models[1].ID)
		assert.Equal(t, model.GeneratedDetail, resp.Models[0].Type)
		assert.Empty(t, resp.Errors)

		_, data, err := utils.ParseDataURL(resp.Models[0].URL)
		require.NoError(t, err)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, prompt.CampaignWidth, cfg.Width)
		assert.Equal(t, prompt.CampaignHeight, cfg.Height)

		require.Len(t, resp.Items, 4)
		assert.Equal(t, "Studio Model", resp.Items[0].Title)
		assert.Equal(t, "Studio Model", resp.Items[1].Title)
		assert.Equal(t, "1.png", resp.Items[2].Title)
		assert.Equal(t, "2.png", resp.Items[3].Title)

		ws, err := mgr.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, ws.Models, 2)
	})

	t.Run("studio: 일부 실패는 계속", func(t *testing.T) {
		svc, gen, _ := newTestService(t)
		gen.failAt = 1
		gen.err = &gemini.GenerationError{Kind: gemini.KindNoImageReturned}
		resp, err := svc.Generate(ctx, "s1", GenerateRequest{
			Mode:     ModeStudio,
			Products: []model.UploadedImage{upload(t, "1.png")},
			Models:   []model.UploadedImage{upload(t, "a.png"), upload(t, "b.png")},
		})
		require.NoError(t, err)
		require.Len(t, resp.Models, 1)
		assert.Equal(t, "detail-1700000000000-1", resp.Models[0].ID)
		require.Len(t, resp.Errors, 1)
		assert.True(t, strings.HasPrefix(resp.Errors[0], "1번 모델: "))
	})

	t.Run("studio: 전부 실패하면 첫 에러", func(t *testing.T) {
		svc, gen, mgr := newTestService(t)
		gen.err = &gemini.GenerationError{Kind: gemini.KindGenerationBlocked, Detail: "SAFETY"}
		_, err := svc.Generate(ctx, "s1", GenerateRequest{
			Mode:     ModeStudio,
			Products: []model.UploadedImage{upload(t, "1.png")},
			Models:   []model.UploadedImage{upload(t, "a.png"), upload(t, "b.png")},
		})
		require.ErrorIs(t, err, gemini.ErrGenerationBlocked)
		assert.Len(t, gen.calls, 2)

		ws, err := mgr.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, ws.Models)
	})

	t.Run("studio: 취소", func(t *testing.T) {
		svc, gen, _ := newTestService(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		gen.err = errors.New("canceled upstream")
		_, err := svc.Generate(cctx, "s1", GenerateRequest{
			Mode:     ModeStudio,
			Products: []model.UploadedImage{upload(t, "1.png")},
			Models:   []model.UploadedImage{upload(t, "a.png"), upload(t, "b.png")},
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, gen.calls, 1)
	})

	t.Run("frame: 제품 + 기본 템플릿", func(t *testing.T) {
		svc, gen, _ := newTestService(t)
		resp, err := svc.Generate(ctx, "s1", GenerateRequest{
			Mode:     ModeFrame,
			Products: []model.UploadedImage{upload(t, "1.png")},
		})
		require.NoError(t, err)
		assert.Empty(t, gen.calls)
		require.Len(t, resp.Items, 1+len(frameTemplates))
		assert.Equal(t, content.KindImage, resp.Items[0].Kind)
		for i, typ := range frameTemplates {
			it := resp.Items[i+1]
			assert.Equal(t, content.KindSection, it.Kind)
			assert.Equal(t, typ, it.SectionType)
			assert.NotEmpty(t, it.Payload)
		}
	})

	t.Run("기존 목록 교체", func(t *testing.T) {
		svc, _, mgr := newTestService(t)
		_, err := mgr.Update(ctx, "s1", func(ws *workspace.Workspace) error {
			_, err := ws.Items.Append(content.NewSection("<p>old</p>"))
			return err
		})
		require.NoError(t, err)

		_, err = svc.Generate(ctx, "s1", GenerateRequest{Mode: ModeOriginal, Products: []model.UploadedImage{upload(t, "1.png")}})
		require.NoError(t, err)
		ws, err := mgr.Get(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, 1, ws.Items.Len())
		assert.Equal(t, content.KindImage, ws.Items.Items()[0].Kind)
	})
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML("page.html", ""))
	assert.True(t, IsHTML("PAGE.HTM", ""))
	assert.True(t, IsHTML("", "text/html; charset=utf-8"))
	assert.False(t, IsHTML("page.txt", "text/plain"))
	assert.False(t, IsHTML("", ""))
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	svc, _, mgr := newTestService(t)

	t.Run("HTML 아님", func(t *testing.T) {
		_, err := svc.Import(ctx, "s1", "notes.txt", "text/plain", strings.NewReader("hi"))
		require.ErrorIs(t, err, ErrNotHTML)
	})

	t.Run("빈 문서", func(t *testing.T) {
		_, err := svc.Import(ctx, "s1", "a.html", "", strings.NewReader("<html><body></body></html>"))
		require.ErrorIs(t, err, export.ErrNoContent)
	})

	t.Run("내보낸 문서 가져오기", func(t *testing.T) {
		doc := export.HTML([]content.Item{
			content.NewImage("https://cdn.example.com/1.png"),
			content.NewSection("<p>hello</p>"),
		})
		items, err := svc.Import(ctx, "s1", "detail.html", "", strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, content.KindImage, items[0].Kind)
		assert.Equal(t, "<p>hello</p>", items[1].Payload)

		ws, err := mgr.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 2, ws.Items.Len())
	})
}
