package gtfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gridline.opentransit.org/internal/logging"
)

func rawGtfsData(source string, isLocalFile bool, config Config) ([]byte, error) {
	var b []byte
	var err error

	if isLocalFile {
		b, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequest("GET", source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GTFS request: %w", err)
	}

	if config.StaticAuthHeaderKey != "" && config.StaticAuthHeaderValue != "" {
		req.Header.Set(config.StaticAuthHeaderKey, config.StaticAuthHeaderValue)
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       90 * time.Second,
		}}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "gtfs_downloader")),
		"http_response_body")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download GTFS data: received HTTP status %s", resp.Status)
	}
	const maxStaticSize = 200 * 1024 * 1024
	b, err = io.ReadAll(io.LimitReader(resp.Body, maxStaticSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	if int64(len(b)) > maxStaticSize {
		return nil, fmt.Errorf("static GTFS response exceeds size limit of %d bytes", maxStaticSize)
	}

	return b, nil
}

func (manager *Manager) refreshInterval() time.Duration {
	if manager.config.RefreshIntervalHours > 0 {
		return time.Duration(manager.config.RefreshIntervalHours) * time.Hour
	}
	return 24 * time.Hour
}

// updateStaticGTFS re-downloads the feed on a schedule. Local files are
// never refreshed.
func (manager *Manager) updateStaticGTFS() {
	defer manager.wg.Done()

	logger := slog.Default().With(slog.String("component", "gtfs_static_updater"))

	if manager.isLocalFile {
		logging.LogOperation(logger, "gtfs_source_is_local_file_skipping_periodic_updates",
			slog.String("source", manager.config.GtfsURL))
		return
	}

	ticker := time.NewTicker(manager.refreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			err := manager.ForceUpdate(ctx)
			cancel()

			if err != nil {
				logging.LogError(logger, "Error updating GTFS data", err,
					slog.String("source", manager.config.GtfsURL))
				continue
			}

		case <-manager.shutdownChan:
			logging.LogOperation(logger, "shutting_down_static_gtfs_updates")
			return
		}
	}
}

// ForceUpdate re-reads the feed and hot-swaps the snapshot. The
// replacement is built entirely off to the side; readers keep serving
// the old snapshot until the swap, and a failed load leaves it in
// place. The derived-results store is rewritten only when the feed
// bytes changed.
func (manager *Manager) ForceUpdate(ctx context.Context) error {
	manager.staticUpdateMutex.Lock()
	defer manager.staticUpdateMutex.Unlock()

	logger := slog.Default().With(slog.String("component", "gtfs_updater"))

	raw, err := rawGtfsData(manager.config.GtfsURL, manager.isLocalFile, manager.config)
	if err != nil {
		logging.LogError(logger, "Error updating GTFS data", err,
			slog.String("source", manager.config.GtfsURL))
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := buildSnapshot(raw, manager.config)
	if err != nil {
		logging.LogError(logger, "Error building new GTFS snapshot", err)
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	manager.applySnapshot(snap)

	if err := manager.persistSnapshot(ctx, raw, snap); err != nil {
		logging.LogError(logger, "Failed to persist derived results after update", err)
		return err
	}

	logging.LogOperation(logger, "gtfs_static_data_updated_hot_swap",
		slog.String("source", manager.config.GtfsURL))

	return nil
}
