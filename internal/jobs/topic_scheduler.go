package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"titan/internal/logging"
	"titan/internal/models"
	"titan/internal/topics"
)

const (
	topicJobName = "topic_generation"
	runTimeout   = 2 * time.Minute
	maxSlugLen   = 60
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule parses a standard five-field cron expression.
func ValidateSchedule(expr string) (cron.Schedule, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return sched, nil
}

// TopicScheduler selects a topic on a cron schedule and writes its brief to
// disk for the downstream writers.
type TopicScheduler struct {
	selector  *topics.Selector
	briefDir  string
	expr      string
	schedule  cron.Schedule
	scheduler gocron.Scheduler
}

// NewTopicScheduler creates a scheduler. The cron expression is evaluated in UTC.
func NewTopicScheduler(selector *topics.Selector, briefDir, expr string) (*TopicScheduler, error) {
	sched, err := ValidateSchedule(expr)
	if err != nil {
		return nil, err
	}
	return &TopicScheduler{
		selector: selector,
		briefDir: briefDir,
		expr:     expr,
		schedule: sched,
	}, nil
}

// NextRun returns the first scheduled run after t.
func (s *TopicScheduler) NextRun(t time.Time) time.Time {
	return s.schedule.Next(t.UTC())
}

// Start registers the job and starts the scheduler. Runs stop when ctx is done.
func (s *TopicScheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(s.expr, false),
		gocron.NewTask(func() {
			if _, err := s.RunOnce(ctx); err != nil {
				log.Printf("Topic scheduler: run failed: %v", err)
			}
		}),
		gocron.WithName(topicJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create topic job: %w", err)
	}

	s.scheduler = scheduler
	scheduler.Start()
	log.Printf("Topic scheduler started (cron: %s, next run: %s)", s.expr, s.NextRun(time.Now()).Format(time.RFC3339))
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *TopicScheduler) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	log.Println("Topic scheduler stopped")
	return s.scheduler.Shutdown()
}

// RunOnce selects the next topic and writes its brief. It returns the brief path.
func (s *TopicScheduler) RunOnce(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	logger := logging.WithJob(topicJobName, uuid.NewString())

	rec, err := s.selector.SelectNextTopic(ctx)
	if err != nil {
		logger.Error("topic selection failed", "error", err)
		return "", err
	}

	path, err := WriteBrief(s.briefDir, rec)
	if err != nil {
		logger.Error("failed to write brief", "keyword", rec.PrimaryKeyword, "error", err)
		return "", err
	}

	logger.Info("brief written", "keyword", rec.PrimaryKeyword, "category", rec.Category, "path", path)
	return path, nil
}

// WriteBrief stores rec as indented JSON named YYYY-MM-DD-<slug>.json in dir.
func WriteBrief(dir string, rec *models.TopicRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create brief dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode brief: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", rec.GeneratedAt.UTC().Format("2006-01-02"), Slugify(rec.PrimaryKeyword))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write brief: %w", err)
	}
	return path, nil
}

// Slugify turns a keyword into a lowercase, hyphen-separated file name part.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "topic"
	}
	return slug
}
