package images

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DalleClient generates header images with DALL-E when photo search fails.
type DalleClient struct {
	client  openai.Client
	quality string
}

func NewDalleClient(apiKey, quality string) *DalleClient {
	return &DalleClient{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		quality: quality,
	}
}

// Generate produces a landscape header image for the title and returns its
// URL.
func (c *DalleClient) Generate(ctx context.Context, title string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:          openai.ImageModelDallE3,
		Prompt:         buildImagePrompt(title),
		Size:           openai.ImageGenerateParamsSize1792x1024,
		Quality:        openai.ImageGenerateParamsQuality(c.quality),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
		N:              openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no data")
	}

	return resp.Data[0].URL, nil
}

func buildImagePrompt(title string) string {
	return fmt.Sprintf("A professional, modern, and visually appealing illustration for a blog post titled '%s'. "+
		"The image should be clean, colorful, and suitable for a professional blog header. "+
		"Style: contemporary digital illustration with a professional aesthetic.", title)
}
