package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mufattish/backend/internal/acquisitions"
	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/repos"
	"github.com/mufattish/backend/internal/types"
)

// ErrUnsupportedSchema is returned when an upload names a (level, subject)
// pair the detailed parser has no positional mapping for. The parser itself
// would only yield an empty cohort; the service turns that into a distinct
// message before parsing anything.
var ErrUnsupportedSchema = errors.New("unsupported level/subject pair")

// remediationLimit caps how many weak criteria the class dashboard carries
// remediation entries for.
const remediationLimit = 3

type ClassUploadMeta struct {
	School    string
	ClassName string
	Level     string
	Subject   string
}

type GlobalUploadMeta struct {
	School    string
	ClassName string
}

// StudentComposite is one dashboard line: who, how they composite, and the
// band that puts them in.
type StudentComposite struct {
	ID        string                   `json:"id"`
	FullName  string                   `json:"full_name,omitempty"`
	Number    int                      `json:"number,omitempty"`
	Composite float64                  `json:"composite"`
	Band      acquisitions.MasteryBand `json:"band"`
}

// ClassDashboard is the indicator bundle for one detailed-grid record.
type ClassDashboard struct {
	RecordID     uuid.UUID                            `json:"record_id"`
	Level        string                               `json:"level"`
	Subject      string                               `json:"subject"`
	StudentCount int                                  `json:"student_count"`
	Homogeneity  float64                              `json:"homogeneity"`
	Bands        acquisitions.BandTally               `json:"bands"`
	SuccessRates []acquisitions.CriterionRate         `json:"success_rates"`
	Quadrants    acquisitions.QuadrantSummary         `json:"quadrants"`
	Remediation  []acquisitions.RemediationSuggestion `json:"remediation"`
	Students     []StudentComposite                   `json:"students"`
}

// GlobalDashboard is the indicator bundle for one omnibus record.
type GlobalDashboard struct {
	RecordID          uuid.UUID                  `json:"record_id"`
	StudentCount      int                        `json:"student_count"`
	Subjects          []string                   `json:"subjects"`
	Homogeneity       float64                    `json:"homogeneity"`
	Bands             acquisitions.BandTally     `json:"bands"`
	SubjectRates      []acquisitions.SubjectRate `json:"subject_rates"`
	EliteRate         float64                    `json:"elite_rate"`
	AcceptableRate    float64                    `json:"acceptable_rate"`
	TamazightExcluded bool                       `json:"tamazight_excluded"`
	Students          []StudentComposite         `json:"students"`
}

type AcquisitionsService interface {
	ImportClassRecord(ctx context.Context, meta ClassUploadMeta, files [][]byte) (*types.AcqClassRecord, int, error)
	ListClassRecords(ctx context.Context) ([]*types.AcqClassRecord, error)
	GetClassRecord(ctx context.Context, id uuid.UUID) (*types.AcqClassRecord, error)
	DeleteClassRecord(ctx context.Context, id uuid.UUID) error
	ClassIndicators(ctx context.Context, id uuid.UUID) (*ClassDashboard, error)

	ImportGlobalRecord(ctx context.Context, meta GlobalUploadMeta, file []byte) (*types.AcqGlobalRecord, *acquisitions.GlobalParseResult, error)
	ListGlobalRecords(ctx context.Context) ([]*types.AcqGlobalRecord, error)
	GetGlobalRecord(ctx context.Context, id uuid.UUID) (*types.AcqGlobalRecord, error)
	DeleteGlobalRecord(ctx context.Context, id uuid.UUID) error
	GlobalIndicators(ctx context.Context, id uuid.UUID) (*GlobalDashboard, error)
}

type acquisitionsService struct {
	db         *gorm.DB
	log        *logger.Logger
	classRepo  repos.AcqClassRecordRepo
	globalRepo repos.AcqGlobalRecordRepo
	schoolRepo repos.SchoolProfileRepo
	cache      *IndicatorCache
}

func NewAcquisitionsService(
	db *gorm.DB,
	log *logger.Logger,
	classRepo repos.AcqClassRecordRepo,
	globalRepo repos.AcqGlobalRecordRepo,
	schoolRepo repos.SchoolProfileRepo,
	cache *IndicatorCache,
) AcquisitionsService {
	serviceLog := log.With("service", "AcquisitionsService")
	return &acquisitionsService{
		db:         db,
		log:        serviceLog,
		classRepo:  classRepo,
		globalRepo: globalRepo,
		schoolRepo: schoolRepo,
		cache:      cache,
	}
}

func (s *acquisitionsService) ImportClassRecord(ctx context.Context, meta ClassUploadMeta, files [][]byte) (*types.AcqClassRecord, int, error) {
	if _, ok := acquisitions.FindSubjectDefinition(meta.Level, meta.Subject); !ok {
		return nil, 0, fmt.Errorf("%w: level=%q subject=%q", ErrUnsupportedSchema, meta.Level, meta.Subject)
	}

	// Files are independent, so parse them in parallel and keep upload order.
	parsed := make([][]types.AcqStudent, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, data := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			students, err := acquisitions.ParseDetailedGrid(data, meta.Level, meta.Subject)
			if err != nil {
				return fmt.Errorf("file %d: %w", i+1, err)
			}
			parsed[i] = students
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	students := make([]types.AcqStudent, 0)
	for _, part := range parsed {
		students = append(students, part...)
	}
	s.log.Info("Parsed detailed grids",
		"level", meta.Level, "subject", meta.Subject,
		"files", len(files), "students", len(students))

	payload, err := json.Marshal(students)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode students: %w", err)
	}
	record := &types.AcqClassRecord{
		ID:         uuid.New(),
		School:     meta.School,
		ClassName:  meta.ClassName,
		Level:      meta.Level,
		Subject:    meta.Subject,
		UploadDate: time.Now().UTC(),
		Students:   datatypes.JSON(payload),
	}
	if _, err := s.classRepo.Create(ctx, nil, []*types.AcqClassRecord{record}); err != nil {
		return nil, 0, fmt.Errorf("failed to persist class record: %w", err)
	}
	return record, len(students), nil
}

func (s *acquisitionsService) ListClassRecords(ctx context.Context) ([]*types.AcqClassRecord, error) {
	return s.classRepo.List(ctx, nil)
}

func (s *acquisitionsService) GetClassRecord(ctx context.Context, id uuid.UUID) (*types.AcqClassRecord, error) {
	return s.classRepo.GetByID(ctx, nil, id)
}

func (s *acquisitionsService) DeleteClassRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.classRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, classDashboardKey(id))
	return nil
}

func (s *acquisitionsService) ClassIndicators(ctx context.Context, id uuid.UUID) (*ClassDashboard, error) {
	key := classDashboardKey(id)
	var cached ClassDashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	record, err := s.classRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	def, ok := acquisitions.FindSubjectDefinition(record.Level, record.Subject)
	if !ok {
		return nil, fmt.Errorf("%w: level=%q subject=%q", ErrUnsupportedSchema, record.Level, record.Subject)
	}

	var students []types.AcqStudent
	if err := json.Unmarshal(record.Students, &students); err != nil {
		return nil, fmt.Errorf("failed to decode stored students: %w", err)
	}

	composites := acquisitions.ClassComposites(students)
	lines := make([]StudentComposite, len(students))
	for i := range students {
		lines[i] = StudentComposite{
			ID:        students[i].ID,
			FullName:  students[i].FullName,
			Composite: composites[i],
			Band:      acquisitions.ClassifyComposite(composites[i]),
		}
	}

	dashboard := &ClassDashboard{
		RecordID:     record.ID,
		Level:        record.Level,
		Subject:      record.Subject,
		StudentCount: len(students),
		Homogeneity:  acquisitions.Homogeneity(composites),
		Bands:        acquisitions.TallyBands(composites),
		SuccessRates: acquisitions.CriterionSuccessRates(students, def),
		Quadrants:    acquisitions.TallyQuadrants(students, def),
		Remediation:  acquisitions.SuggestRemediation(students, def, remediationLimit),
		Students:     lines,
	}
	s.cache.Set(ctx, key, dashboard)
	return dashboard, nil
}

func (s *acquisitionsService) ImportGlobalRecord(ctx context.Context, meta GlobalUploadMeta, file []byte) (*types.AcqGlobalRecord, *acquisitions.GlobalParseResult, error) {
	result, err := acquisitions.ParseGlobalGrid(file)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("Parsed global grid",
		"subjects", len(result.Subjects), "students", len(result.Students))

	studentsJSON, err := json.Marshal(result.Students)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode students: %w", err)
	}
	subjectsJSON, err := json.Marshal(result.Subjects)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode subjects: %w", err)
	}
	record := &types.AcqGlobalRecord{
		ID:               uuid.New(),
		School:           meta.School,
		ClassName:        meta.ClassName,
		UploadDate:       time.Now().UTC(),
		Students:         datatypes.JSON(studentsJSON),
		DetectedSubjects: datatypes.JSON(subjectsJSON),
	}
	if _, err := s.globalRepo.Create(ctx, nil, []*types.AcqGlobalRecord{record}); err != nil {
		return nil, nil, fmt.Errorf("failed to persist global record: %w", err)
	}
	return record, result, nil
}

func (s *acquisitionsService) ListGlobalRecords(ctx context.Context) ([]*types.AcqGlobalRecord, error) {
	return s.globalRepo.List(ctx, nil)
}

func (s *acquisitionsService) GetGlobalRecord(ctx context.Context, id uuid.UUID) (*types.AcqGlobalRecord, error) {
	return s.globalRepo.GetByID(ctx, nil, id)
}

func (s *acquisitionsService) DeleteGlobalRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.globalRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, globalDashboardKey(id, false), globalDashboardKey(id, true))
	return nil
}

func (s *acquisitionsService) GlobalIndicators(ctx context.Context, id uuid.UUID) (*GlobalDashboard, error) {
	profile, err := s.schoolRepo.Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	tamazightTaught := true
	if profile != nil {
		tamazightTaught = profile.TamazightTaught
	}

	// The applicability flag changes the elite/acceptable rates, so it is
	// part of the cache key.
	key := globalDashboardKey(id, !tamazightTaught)
	var cached GlobalDashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	record, err := s.globalRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	var students []types.AcqGlobalStudent
	if err := json.Unmarshal(record.Students, &students); err != nil {
		return nil, fmt.Errorf("failed to decode stored students: %w", err)
	}
	var subjects []string
	if err := json.Unmarshal(record.DetectedSubjects, &subjects); err != nil {
		return nil, fmt.Errorf("failed to decode stored subjects: %w", err)
	}

	// Sheet-provided roll numbers, not insertion order, drive the listing.
	sort.SliceStable(students, func(a, b int) bool {
		return students[a].Number < students[b].Number
	})

	excluded := map[string]bool{}
	if !tamazightTaught {
		excluded[acquisitions.TamazightSubject] = true
	}

	composites := acquisitions.GlobalComposites(students)
	lines := make([]StudentComposite, len(students))
	for i := range students {
		lines[i] = StudentComposite{
			ID:        students[i].ID,
			Number:    students[i].Number,
			Composite: composites[i],
			Band:      acquisitions.ClassifyComposite(composites[i]),
		}
	}

	dashboard := &GlobalDashboard{
		RecordID:          record.ID,
		StudentCount:      len(students),
		Subjects:          subjects,
		Homogeneity:       acquisitions.Homogeneity(composites),
		Bands:             acquisitions.TallyBands(composites),
		SubjectRates:      acquisitions.SubjectSuccessRates(students, subjects),
		EliteRate:         acquisitions.EliteRate(students, excluded),
		AcceptableRate:    acquisitions.AcceptableRate(students, excluded),
		TamazightExcluded: !tamazightTaught,
		Students:          lines,
	}
	s.cache.Set(ctx, key, dashboard)
	return dashboard, nil
}

func classDashboardKey(id uuid.UUID) string {
	return fmt.Sprintf("indicators:class:%s", id)
}

func globalDashboardKey(id uuid.UUID, tamazightExcluded bool) string {
	return fmt.Sprintf("indicators:global:%s:tzx=%t", id, tamazightExcluded)
}
