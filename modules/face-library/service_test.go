package facelibrary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/storage"
	"ai-fashion-hub/modules/prompt"
)

func TestGenerateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("5개 병렬, 1:1 1K, 안전 설정", func(t *testing.T) {
		gen := &mockGenerator{}
		svc := NewService(gen, nil, nil)

		images, failed, err := svc.GenerateBatch(ctx, BatchRequest{Gender: "female", Race: "한국인", Age: "24"})
		require.NoError(t, err)
		assert.Len(t, images, prompt.FaceBatchSize)
		assert.Zero(t, failed)

		require.Len(t, gen.calls, prompt.FaceBatchSize)
		for _, call := range gen.calls {
			assert.Equal(t, "1:1", call.AspectRatio)
			assert.Equal(t, "1K", call.ImageSize)
			assert.True(t, call.SafetyHigh)
			assert.Empty(t, call.Images)
		}
	})

	t.Run("실패 슬롯은 제외, 순서 유지", func(t *testing.T) {
		failHair := prompt.SlotStyle(prompt.GenderMale, 1).Hair
		gen := &mockGenerator{generateFunc: func(req gemini.ImageRequest) (string, error) {
			if strings.Contains(req.Prompt, failHair) {
				return "", &gemini.GenerationError{Kind: gemini.KindNoImageReturned}
			}
			for slot := 0; slot < prompt.FaceBatchSize; slot++ {
				if strings.Contains(req.Prompt, prompt.SlotStyle(prompt.GenderMale, slot).Hair) {
					return fmt.Sprintf("data:image/png;base64,slot%d", slot), nil
				}
			}
			return "", errors.New("unexpected prompt")
		}}
		svc := NewService(gen, nil, nil)

		images, failed, err := svc.GenerateBatch(ctx, BatchRequest{Gender: "male", Race: "백인", Age: "40"})
		require.NoError(t, err)
		assert.Equal(t, 1, failed)
		assert.Equal(t, []string{
			"data:image/png;base64,slot0",
			"data:image/png;base64,slot2",
			"data:image/png;base64,slot3",
			"data:image/png;base64,slot4",
		}, images)
	})

	t.Run("전부 실패하면 에러", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(req gemini.ImageRequest) (string, error) {
			return "", &gemini.GenerationError{Kind: gemini.KindGenerationBlocked, Detail: "SAFETY"}
		}}
		svc := NewService(gen, nil, nil)
		_, failed, err := svc.GenerateBatch(ctx, BatchRequest{})
		require.ErrorIs(t, err, gemini.ErrGenerationBlocked)
		assert.Equal(t, prompt.FaceBatchSize, failed)
	})
}

func TestUpscaleAndSwap(t *testing.T) {
	ctx := context.Background()
	gen := &mockGenerator{}
	svc := NewService(gen, nil, nil)

	_, err := svc.Upscale(ctx, "")
	require.ErrorIs(t, err, ErrImageRequired)

	_, err = svc.Upscale(ctx, "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	call := gen.calls[0]
	assert.Equal(t, "4K", call.ImageSize)
	assert.Equal(t, "1:1", call.AspectRatio)
	assert.True(t, call.SafetyHigh)
	require.Len(t, call.Images, 1)
	assert.Equal(t, "image/jpeg", call.Images[0].MimeType)
	assert.Equal(t, prompt.Upscale(), call.Prompt)

	_, err = svc.Swap(ctx, SwapRequest{SourceFace: "data:image/png;base64,AAAA"})
	require.ErrorIs(t, err, ErrSwapInputs)

	_, err = svc.Swap(ctx, SwapRequest{SourceFace: "data:image/png;base64,AAAA", TargetImage: "data:image/png;base64,BBBB"})
	require.NoError(t, err)
	call = gen.calls[1]
	require.Len(t, call.Labeled, 2)
	assert.Equal(t, prompt.LabelSourceFace, call.Labeled[0].Label)
	assert.Equal(t, prompt.LabelTargetImage, call.Labeled[1].Label)
	require.NotNil(t, call.Temperature)
	assert.InDelta(t, 0.4, *call.Temperature, 1e-6)
	assert.InDelta(t, 0.95, *call.TopP, 1e-6)
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("미설정", func(t *testing.T) {
		svc := NewService(&mockGenerator{}, nil, nil)
		_, err := svc.Save(ctx, SaveRequest{Image: "data:image/png;base64,AAAA"})
		require.ErrorIs(t, err, storage.ErrNotConfigured)
		_, err = svc.List(ctx, "")
		require.ErrorIs(t, err, storage.ErrNotConfigured)
	})

	t.Run("WebP 업로드 후 인덱스 추가", func(t *testing.T) {
		index := &mockIndex{}
		backend := &mockBackend{}
		svc := NewService(&mockGenerator{}, index, backend)
		svc.convert = fakeWebP
		svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

		rec, err := svc.Save(ctx, SaveRequest{Image: "data:image/png;base64,AAAA", Gender: "MALE", Race: "한국인", Age: "30"})
		require.NoError(t, err)
		assert.Equal(t, "male", rec.Gender)
		assert.True(t, strings.HasPrefix(rec.ObjectPath, "faces/male/"))
		assert.True(t, strings.HasSuffix(rec.ObjectPath, ".webp"))
		assert.Equal(t, "https://cdn.example.com/"+rec.ObjectPath, rec.URL)
		assert.True(t, strings.HasPrefix(string(backend.uploads[rec.ObjectPath]), "WEBP"))

		_, err = svc.Save(ctx, SaveRequest{Image: "data:image/png;base64,BBBB", Gender: "female"})
		require.NoError(t, err)

		males, err := svc.List(ctx, "male")
		require.NoError(t, err)
		assert.Len(t, males, 1)

		all, err := svc.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("인덱스 실패 전파", func(t *testing.T) {
		svc := NewService(&mockGenerator{}, &mockIndex{err: errors.New("db down")}, &mockBackend{})
		svc.convert = fakeWebP
		_, err := svc.Save(ctx, SaveRequest{Image: "data:image/png;base64,AAAA"})
		require.Error(t, err)
	})
}
