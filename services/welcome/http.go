package welcomesvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
)

type httpService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	appName string
	logger  core.Logger
}

var _ core.WelcomeService = (*httpService)(nil)

// NewHTTPService returns a WelcomeService backed by a hosted
// text-generation API (generateContent-style endpoint).
func NewHTTPService(conf *core.Config, logger core.Logger) core.WelcomeService {
	return &httpService{
		client:  &http.Client{Timeout: conf.Welcome.Timeout},
		baseURL: conf.Welcome.BaseURL,
		apiKey:  conf.Welcome.APIKey,
		model:   conf.Welcome.Model,
		appName: conf.AppName,
		logger:  logger,
	}
}

func (svc *httpService) Generate(ctx context.Context, req core.WelcomeRequest) string {
	msg, err := svc.generate(ctx, req)
	if err != nil || msg == "" {
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("welcome generation failed: %v", err), err)
		}
		return core.FallbackWelcomeMessage(svc.appName, req)
	}
	return msg
}

type (
	generateRequest struct {
		Contents []content `json:"contents"`
	}
	content struct {
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}
	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
)

func (svc *httpService) generate(ctx context.Context, req core.WelcomeRequest) (string, error) {
	prompt := core.WelcomePrompt(svc.appName, req)
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", svc.baseURL, svc.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", svc.apiKey)

	res, err := svc.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "calling generation API")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("generation API returned %s", res.Status)
	}

	var out generateResponse
	if err = json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty generation response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
