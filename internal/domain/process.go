package domain

import (
	"context"
	"sort"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

const MaxTipLength = 1000

type InterviewPosition struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"company_name"`
	Title       string    `json:"title"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type InterviewRound struct {
	ID          int64      `json:"id"`
	PositionID  int64      `json:"position_id"`
	RoundName   string     `json:"round_name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Sequence    int        `json:"sequence"`
	CreatedBy   *int64     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

type InterviewTip struct {
	ID        int64     `json:"id"`
	RoundID   int64     `json:"round_id"`
	Tip       string    `json:"tip"`
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type RoundProcess struct {
	InterviewRound
	Tips []InterviewTip `json:"tips"`
}

type PositionProcess struct {
	InterviewPosition
	Rounds []RoundProcess `json:"rounds"`
}

type CompanyProcess struct {
	CompanyName string            `json:"company_name"`
	Positions   []PositionProcess `json:"positions"`
}

type CreatePositionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

type CreateRoundRequest struct {
	RoundName   string `json:"round_name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=5000"`
	Difficulty  string `json:"difficulty"`
}

type CreateTipRequest struct {
	Tip string `json:"tip" binding:"required"`
}

// AssembleProcesses nests rounds under positions and tips under rounds,
// grouped by company. Positions sort by title, rounds by sequence, tips by id.
// Rows whose parent is missing are dropped.
func AssembleProcesses(positions []InterviewPosition, rounds []InterviewRound, tips []InterviewTip) []CompanyProcess {
	tipsByRound := make(map[int64][]InterviewTip)
	for _, t := range tips {
		tipsByRound[t.RoundID] = append(tipsByRound[t.RoundID], t)
	}
	roundsByPosition := make(map[int64][]RoundProcess)
	for _, r := range rounds {
		rt := tipsByRound[r.ID]
		sort.Slice(rt, func(i, j int) bool { return rt[i].ID < rt[j].ID })
		if rt == nil {
			rt = []InterviewTip{}
		}
		roundsByPosition[r.PositionID] = append(roundsByPosition[r.PositionID], RoundProcess{InterviewRound: r, Tips: rt})
	}

	sorted := make([]InterviewPosition, len(positions))
	copy(sorted, positions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CompanyName != sorted[j].CompanyName {
			return sorted[i].CompanyName < sorted[j].CompanyName
		}
		if sorted[i].Title != sorted[j].Title {
			return sorted[i].Title < sorted[j].Title
		}
		return sorted[i].ID < sorted[j].ID
	})

	var out []CompanyProcess
	index := make(map[string]int)
	for _, p := range sorted {
		pr := roundsByPosition[p.ID]
		sort.Slice(pr, func(i, j int) bool { return pr[i].Sequence < pr[j].Sequence })
		if pr == nil {
			pr = []RoundProcess{}
		}
		i, ok := index[p.CompanyName]
		if !ok {
			i = len(out)
			index[p.CompanyName] = i
			out = append(out, CompanyProcess{CompanyName: p.CompanyName, Positions: []PositionProcess{}})
		}
		out[i].Positions = append(out[i].Positions, PositionProcess{InterviewPosition: p, Rounds: pr})
	}
	return out
}

type ProcessRepository interface {
	// ListPositions returns positions of one company, or of all companies when
	// company is empty.
	ListPositions(ctx context.Context, company string) ([]InterviewPosition, error)
	ListRounds(ctx context.Context, positionIDs []int64) ([]InterviewRound, error)
	ListTips(ctx context.Context, roundIDs []int64) ([]InterviewTip, error)
	// CreatePosition ensures the company exists first.
	CreatePosition(ctx context.Context, p *InterviewPosition) error
	GetPosition(ctx context.Context, id int64) (*InterviewPosition, error)
	// CreateRound assigns the next sequence number within the position.
	CreateRound(ctx context.Context, r *InterviewRound) error
	GetRound(ctx context.Context, id int64) (*InterviewRound, error)
	CreateTip(ctx context.Context, t *InterviewTip) error
	GetTip(ctx context.Context, id int64) (*InterviewTip, error)
	DeleteTip(ctx context.Context, id int64) error
}

type ProcessUsecase interface {
	CompanyProcess(ctx context.Context, company string) (*CompanyProcess, error)
	AllProcesses(ctx context.Context) ([]CompanyProcess, error)
	CreatePosition(ctx context.Context, company string, req CreatePositionRequest) (*InterviewPosition, error)
	CreateRound(ctx context.Context, positionID int64, req CreateRoundRequest) (*InterviewRound, error)
	CreateTip(ctx context.Context, roundID int64, req CreateTipRequest) (*InterviewTip, error)
	DeleteTip(ctx context.Context, tipID int64) error
}
