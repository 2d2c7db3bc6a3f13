package enhancer

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"google.golang.org/genai"

	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

const (
	textModel  = "gemini-3-flash-preview"
	imageModel = "gemini-2.5-flash-image"
	videoModel = "veo-3.1-fast-generate-preview"

	defaultPollInterval = 5 * time.Second
)

// Gemini implements Service against the Google GenAI API.
type Gemini struct {
	client *genai.Client
	apiKey string
	http   *resty.Client

	// pollInterval spaces out video operation polls. Tests shrink it.
	pollInterval time.Duration
}

// NewGemini builds the collaborator for the given API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}
	return &Gemini{
		client:       client,
		apiKey:       apiKey,
		http:         resty.New(),
		pollInterval: defaultPollInterval,
	}, nil
}

// FromEnv returns a Gemini collaborator when GEMINI_API_KEY is set, and the
// no-op collaborator otherwise. Absence of a key is a supported deployment,
// not an error.
func FromEnv(ctx context.Context) Service {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		Logger.LogV2.Info("no GEMINI_API_KEY, generative enhancement disabled")
		return Noop{}
	}
	gemini, err := NewGemini(ctx, key)
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("gemini client unavailable, enhancement disabled: %v", err))
		return Noop{}
	}
	return gemini
}

func (g *Gemini) EnhanceText(ctx context.Context, prompt string) string {
	instruction := fmt.Sprintf(
		"قم بتحسين المنشور التالي ليكون أكثر جاذبية واحترافية باللغة العربية، مع الحفاظ على نبرة غامضة أو فرعونية (ANKH) إذا كان ذلك مناسباً. اجعل النص لا يتجاوز 200 حرف: \"%s\"",
		prompt,
	)

	resp, err := g.client.Models.GenerateContent(ctx, textModel, genai.Text(instruction), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	})
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("text enhancement failed: %v", err))
		return prompt
	}

	enhanced := resp.Text()
	if enhanced == "" {
		return prompt
	}
	return enhanced
}

func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	instruction := fmt.Sprintf(
		"Create a cinematic, high-quality, mystical illustration in an ancient Egyptian futuristic style based on this description (translated to English if needed): %s. Ensure deep shadows and golden accents.",
		prompt,
	)

	resp, err := g.client.Models.GenerateContent(ctx, imageModel, genai.Text(instruction), nil)
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("image generation failed: %v", err))
		return "", false
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				encoded := base64.StdEncoding.EncodeToString(part.InlineData.Data)
				return "data:image/png;base64," + encoded, true
			}
		}
	}
	return "", false
}

func (g *Gemini) GenerateVideo(ctx context.Context, prompt string, onProgress func(string)) (string, bool) {
	progress := func(status string) {
		if onProgress != nil {
			onProgress(status)
		}
	}
	progress("بدء طقس التجسيد البصري...")

	instruction := fmt.Sprintf(
		"An ancient Egyptian mystical visual: %s. Cinematic 4k, golden hour, deep shadows, highly detailed.",
		prompt,
	)

	op, err := g.client.Models.GenerateVideos(ctx, videoModel, instruction, nil, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		AspectRatio:    "9:16",
	})
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("video generation failed to start: %v", err))
		return "", false
	}

	dots := "."
	for !op.Done {
		progress("جاري التجسيد في الفراغ الرقمي" + dots)
		if len(dots) > 3 {
			dots = "."
		} else {
			dots += "."
		}

		select {
		case <-ctx.Done():
			Logger.LogV2.Error(fmt.Sprintf("video generation abandoned: %v", ctx.Err()))
			return "", false
		case <-time.After(g.pollInterval):
		}

		op, err = g.client.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			Logger.LogV2.Error(fmt.Sprintf("video generation poll failed: %v", err))
			return "", false
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 ||
		op.Response.GeneratedVideos[0].Video == nil ||
		op.Response.GeneratedVideos[0].Video.URI == "" {
		return "", false
	}

	progress("نهائيات السجل الأبدي...")
	return g.downloadVideo(ctx, op.Response.GeneratedVideos[0].Video.URI)
}

// downloadVideo fetches the finished asset into a local file and returns its
// path as the asset reference.
func (g *Gemini) downloadVideo(ctx context.Context, uri string) (string, bool) {
	out, err := os.CreateTemp("", "ankh-video-*.mp4")
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("failed to create video file: %v", err))
		return "", false
	}
	out.Close()

	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetOutput(out.Name()).
		Get(uri)
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("video download failed: %v", err))
		return "", false
	}
	if resp.StatusCode() >= 300 {
		Logger.LogV2.Error(fmt.Sprintf("video download returned %d", resp.StatusCode()))
		return "", false
	}

	return out.Name(), true
}

var _ Service = (*Gemini)(nil)
