package nobel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xhad/nobel/internal/models"
	"go.uber.org/zap"
)

var ErrMissingField = errors.New("missing laureate field")

// Source provides the laureate dataset.
type Source interface {
	FetchLaureates(ctx context.Context) ([]models.Laureate, error)
}

// Sink receives every fetched dataset, e.g. for persistence.
type Sink interface {
	Store(ctx context.Context, laureates []models.Laureate) error
}

// Archive serves previously stored laureates when the API is unavailable.
type Archive interface {
	ByYear(ctx context.Context, year int) ([]models.Laureate, error)
}

type Report struct {
	Year int
	// Total is the size of the fetched dataset.
	Total int
	// Found is true when at least one laureate's first prize matches Year,
	// including laureates that could not be summarized.
	Found     bool
	Summaries []models.Summary
	// Offline is set when the results came from the archive.
	Offline bool
}

type Finder struct {
	source  Source
	sink    Sink
	archive Archive
	logger  *zap.Logger
}

func NewFinder(source Source, sink Sink, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{source: source, sink: sink, logger: logger}
}

// WithArchive makes FindByYear fall back to archive when the source fails.
func (f *Finder) WithArchive(archive Archive) *Finder {
	f.archive = archive
	return f
}

// FindByYear fetches the dataset and keeps the laureates whose first prize
// was awarded in year.
func (f *Finder) FindByYear(ctx context.Context, year int) (Report, error) {
	report := Report{Year: year}

	laureates, err := f.source.FetchLaureates(ctx)
	if err != nil {
		if f.archive == nil {
			return report, err
		}
		f.logger.Warn("API request failed, using stored laureates", zap.Error(err))
		stored, aerr := f.archive.ByYear(ctx, year)
		if aerr != nil {
			f.logger.Error("failed to read stored laureates", zap.Error(aerr))
			return report, err
		}
		laureates = stored
		report.Offline = true
	}
	report.Total = len(laureates)

	if f.sink != nil && !report.Offline && len(laureates) > 0 {
		if err := f.sink.Store(ctx, laureates); err != nil {
			f.logger.Error("failed to store laureates", zap.Error(err))
		}
	}

	if len(laureates) == 0 {
		f.logger.Error("laureates data not found")
		return report, nil
	}

	for _, l := range laureates {
		if len(l.NobelPrizes) == 0 {
			continue
		}
		awardYear, err := strconv.Atoi(l.NobelPrizes[0].AwardYear)
		if err != nil {
			f.logger.Warn("skipping laureate with invalid award year",
				zap.String("id", l.ID),
				zap.String("award_year", l.NobelPrizes[0].AwardYear))
			continue
		}
		if awardYear != year {
			continue
		}

		report.Found = true
		summary, err := Summarize(l)
		if err != nil {
			f.logger.Error("failed to summarize laureate", zap.String("id", l.ID), zap.Error(err))
			continue
		}
		report.Summaries = append(report.Summaries, summary)
	}

	if !report.Found {
		f.logger.Info(fmt.Sprintf("no laureates were found in %d", year))
	}

	return report, nil
}

// Summarize extracts the name, award year and first affiliation of a laureate.
func Summarize(l models.Laureate) (models.Summary, error) {
	if l.KnownName == nil || l.KnownName.En == "" {
		return models.Summary{}, fmt.Errorf("%w: knownName.en", ErrMissingField)
	}
	if len(l.NobelPrizes) == 0 {
		return models.Summary{}, fmt.Errorf("%w: nobelPrizes", ErrMissingField)
	}
	prize := l.NobelPrizes[0]
	if len(prize.Affiliations) == 0 || prize.Affiliations[0].Name == nil {
		return models.Summary{}, fmt.Errorf("%w: nobelPrizes[0].affiliations[0].name", ErrMissingField)
	}

	return models.Summary{
		FullName:    l.KnownName.En,
		AwardYear:   prize.AwardYear,
		Affiliation: prize.Affiliations[0].Name.En,
	}, nil
}
