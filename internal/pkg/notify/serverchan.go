package notify

import (
	"Redwatch/internal/api/config"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// ServerChan Server酱微信推送
type ServerChan struct {
	client   *resty.Client
	endpoint string
	sendKey  string
}

type serverChanResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewServerChan(cfg config.ServerChanConfig) *ServerChan {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ServerChan{
		client:   resty.New().SetTimeout(timeout),
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		sendKey:  cfg.SendKey,
	}
}

func (s *ServerChan) Name() string {
	return "serverchan"
}

func (s *ServerChan) Send(ctx context.Context, title, body string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"title": title,
			"desp":  body,
		}).
		Post(fmt.Sprintf("%s/%s.send", s.endpoint, s.sendKey))
	if err != nil {
		return fmt.Errorf("%w: serverchan request: %v", ErrDeliveryFailure, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: serverchan status %d", ErrDeliveryFailure, resp.StatusCode())
	}

	var result serverChanResp
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("%w: serverchan response: %v", ErrDeliveryFailure, err)
	}
	if result.Code != 0 {
		return fmt.Errorf("%w: serverchan code %d: %s", ErrDeliveryFailure, result.Code, result.Message)
	}
	return nil
}
