package providerimpl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/storyreel/storyreel/internal/provider"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// HTTPClient talks to the stories REST backend.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
	Logger  logger.Logger
}

func New(opts Opts) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(opts.Config.API.BaseURL, "/"),
		Client:  &http.Client{Timeout: opts.Config.API.Timeout},
		Logger:  opts.Logger,
	}
}

var _ provider.Client = (*HTTPClient)(nil)

func (c *HTTPClient) getJSON(req *http.Request, out any) error {
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
