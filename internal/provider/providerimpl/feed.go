package providerimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/pkg/errors"
)

func (c *HTTPClient) ListFeed(ctx context.Context) ([]domain.FeedUnit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/stories/feed", nil)
	if err != nil {
		return nil, errors.Wrap(err, "build feed request")
	}

	var units []domain.FeedUnit
	if err := c.getJSON(req, &units); err != nil {
		return nil, errors.WrapWithCode(fmt.Errorf("%w: %v", errors.ErrFeedUnavailable, err), "FEED_LOAD", "failed to list story feed")
	}

	return units, nil
}

func (c *HTTPClient) ListUnitStories(ctx context.Context, unitID string, unitType domain.UnitType) ([]domain.Story, error) {
	endpoint := fmt.Sprintf("%s/stories/%s/%s", c.BaseURL, url.PathEscape(string(unitType)), url.PathEscape(unitID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build unit stories request")
	}

	var stories []domain.Story
	if err := c.getJSON(req, &stories); err != nil {
		return nil, errors.WrapWithCode(fmt.Errorf("%w: %v", errors.ErrUnitUnavailable, err), "UNIT_LOAD", "failed to list unit stories")
	}

	return stories, nil
}

func (c *HTTPClient) MarkViewed(ctx context.Context, storyID string) error {
	endpoint := fmt.Sprintf("%s/stories/%s/view", c.BaseURL, url.PathEscape(storyID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build mark viewed request")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrViewTracking, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", errors.ErrViewTracking, resp.StatusCode)
	}

	return nil
}
