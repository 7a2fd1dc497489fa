// Package moderator screens user-submitted markdown with the OpenAI
// moderation API: the text itself plus any images it references.
package moderator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
)

const (
	moderationModel = "omni-moderation-latest"
	defaultBaseURL  = "https://api.openai.com/v1"

	// Concurrent moderation calls per content check.
	maxInFlight = 4
)

// Verdict is the outcome of screening one piece of content.
type Verdict struct {
	// Flagged means the model judged the content to violate policy.
	Flagged bool `json:"flagged"`
	// Unprocessable means the API could not evaluate part of the content,
	// e.g. an image URL that does not resolve to a fetchable image.
	Unprocessable bool `json:"unprocessable"`
}

type Client struct {
	api        *openai.Client
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func New(apiKey string) *Client {
	return &Client{
		api:        openai.NewClient(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

// NewWithBaseURL points both the SDK and the raw image calls at a custom
// API endpoint, used by tests to stub the moderation API.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ModerateContent screens a markdown document: the text goes through one
// moderation call, every referenced image through its own. Calls run
// concurrently; the first flagged or unprocessable result decides.
func (c *Client) ModerateContent(ctx context.Context, markdown string) (Verdict, error) {
	images := ExtractImageURLs(markdown)

	var (
		mu      sync.Mutex
		verdict Verdict
	)
	merge := func(v Verdict) {
		mu.Lock()
		defer mu.Unlock()
		verdict.Flagged = verdict.Flagged || v.Flagged
		verdict.Unprocessable = verdict.Unprocessable || v.Unprocessable
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)

	g.Go(func() error {
		v, err := c.ModerateText(gctx, markdown)
		if err != nil {
			return err
		}
		merge(v)
		return nil
	})

	for _, image := range images {
		g.Go(func() error {
			v, err := c.ModerateImage(gctx, image)
			if err != nil {
				return err
			}
			merge(v)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Verdict{}, err
	}
	return verdict, nil
}

// ModerateText screens plain text.
func (c *Client) ModerateText(ctx context.Context, text string) (Verdict, error) {
	resp, err := c.api.Moderations(ctx, openai.ModerationRequest{
		Model: moderationModel,
		Input: text,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("moderator: text moderation: %w", err)
	}

	for _, result := range resp.Results {
		if result.Flagged {
			return Verdict{Flagged: true}, nil
		}
	}
	return Verdict{}, nil
}

// ModerateImage screens a single image by URL.
//
// TODO: route this through the SDK once go-openai supports multimodal
// moderation inputs; until then the request is built by hand.
func (c *Client) ModerateImage(ctx context.Context, imageURL string) (Verdict, error) {
	payload, err := json.Marshal(map[string]any{
		"model": moderationModel,
		"input": []map[string]any{
			{
				"type":      "image_url",
				"image_url": map[string]string{"url": imageURL},
			},
		},
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("moderator: marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, fmt.Errorf("moderator: build image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("moderator: image moderation: %w", err)
	}
	defer resp.Body.Close()

	// The API rejects unfetchable or undecodable images with a 400. That
	// is a property of the content, not an outage.
	if resp.StatusCode == http.StatusBadRequest {
		return Verdict{Unprocessable: true}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("moderator: image moderation returned status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Flagged bool `json:"flagged"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Verdict{}, fmt.Errorf("moderator: decode image response: %w", err)
	}

	for _, result := range body.Results {
		if result.Flagged {
			return Verdict{Flagged: true}, nil
		}
	}
	return Verdict{}, nil
}
