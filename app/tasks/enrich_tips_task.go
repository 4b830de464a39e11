package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/theautotimes/newsdesk/app/store"
)

const fetchTimeout = 30 * time.Second

// EnrichTipsTask sweeps the engagement store for tips still pending
// content enrichment, fetches each linked page and attaches the
// extracted article text. Tips with unfetchable links are marked
// skipped so the sweep does not pick them up again.
type EnrichTipsTask struct {
	Task
	engagement *store.Engagement
	httpClient *http.Client
	extractor  *ContentExtractor
	userAgent  string
}

func NewEnrichTipsTask(engagement *store.Engagement, httpClient *http.Client, extractor *ContentExtractor, userAgent string) *EnrichTipsTask {
	return &EnrichTipsTask{
		Task:       NewTask(TaskTypeEnrichTips),
		engagement: engagement,
		httpClient: httpClient,
		extractor:  extractor,
		userAgent:  userAgent,
	}
}

func (t *EnrichTipsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	tips, err := t.engagement.PendingTips()
	if err != nil {
		return fmt.Errorf("failed to read pending tips: %w", err)
	}

	if len(tips) == 0 {
		slog.Debug("No tips need content enrichment")
		return nil
	}

	successCount := 0
	errorCount := 0
	skippedCount := 0

	for _, tip := range tips {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !strings.HasPrefix(tip.DOI, "http://") && !strings.HasPrefix(tip.DOI, "https://") {
			skippedCount++
			if err := t.engagement.UpdateTipContent(tip.ID, "", store.ExtractionSkipped, "link is not fetchable"); err != nil {
				slog.Error("Failed to update tip enrichment status", "tip_id", tip.ID, "error", err)
			}
			continue
		}

		err := t.enrichTip(ctx, tip)
		if err != nil {
			slog.Error("Failed to enrich tip", "tip_id", tip.ID, "url", tip.DOI, "error", err)
			errorCount++

			if err := t.engagement.UpdateTipContent(tip.ID, "", store.ExtractionFailed, err.Error()); err != nil {
				slog.Error("Failed to update tip enrichment status", "tip_id", tip.ID, "error", err)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount,
		"skipped", skippedCount)

	return nil
}

func (t *EnrichTipsTask) enrichTip(ctx context.Context, tip store.Tip) error {
	data, err := t.fetchPage(ctx, tip.DOI)
	if err != nil {
		return fmt.Errorf("failed to fetch linked page: %w", err)
	}

	content, err := t.extractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	if err := t.engagement.UpdateTipContent(tip.ID, content, store.ExtractionSuccess, ""); err != nil {
		return fmt.Errorf("failed to store extracted content: %w", err)
	}

	slog.Debug("Tip enriched successfully", "tip_id", tip.ID, "url", tip.DOI, "content_length", len(content))
	return nil
}

func (t *EnrichTipsTask) fetchPage(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
