package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

type processUsecase struct {
	repo        domain.ProcessRepository
	companyRepo domain.CompanyRepository
}

func NewProcessUsecase(repo domain.ProcessRepository, companyRepo domain.CompanyRepository) domain.ProcessUsecase {
	return &processUsecase{repo: repo, companyRepo: companyRepo}
}

// tree loads positions, their rounds and the rounds' tips, then nests them.
func (u *processUsecase) tree(ctx context.Context, company string) ([]domain.CompanyProcess, error) {
	positions, err := u.repo.ListPositions(ctx, company)
	if err != nil {
		return nil, err
	}
	positionIDs := make([]int64, 0, len(positions))
	for _, p := range positions {
		positionIDs = append(positionIDs, p.ID)
	}

	rounds, err := u.repo.ListRounds(ctx, positionIDs)
	if err != nil {
		return nil, err
	}
	roundIDs := make([]int64, 0, len(rounds))
	for _, r := range rounds {
		roundIDs = append(roundIDs, r.ID)
	}

	tips, err := u.repo.ListTips(ctx, roundIDs)
	if err != nil {
		return nil, err
	}
	return domain.AssembleProcesses(positions, rounds, tips), nil
}

func (u *processUsecase) CompanyProcess(ctx context.Context, company string) (*domain.CompanyProcess, error) {
	c, err := u.companyRepo.Get(ctx, company)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("Company not found")
	}

	processes, err := u.tree(ctx, c.Name)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(processes) == 0 {
		return &domain.CompanyProcess{CompanyName: c.Name, Positions: []domain.PositionProcess{}}, nil
	}
	return &processes[0], nil
}

func (u *processUsecase) AllProcesses(ctx context.Context) ([]domain.CompanyProcess, error) {
	processes, err := u.tree(ctx, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if processes == nil {
		processes = []domain.CompanyProcess{}
	}
	return processes, nil
}

func (u *processUsecase) CreatePosition(ctx context.Context, company string, req domain.CreatePositionRequest) (*domain.InterviewPosition, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	company = strings.TrimSpace(company)
	title := strings.TrimSpace(req.Title)
	if company == "" || title == "" {
		return nil, apperror.BadRequest("Company and title are required")
	}

	p := &domain.InterviewPosition{CompanyName: company, Title: title, CreatedBy: &userID}
	if err := u.repo.CreatePosition(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *processUsecase) CreateRound(ctx context.Context, positionID int64, req domain.CreateRoundRequest) (*domain.InterviewRound, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	difficulty := domain.DifficultyMedium
	if req.Difficulty != "" {
		difficulty = domain.Difficulty(req.Difficulty)
		if !difficulty.Valid() {
			return nil, apperror.BadRequest("Difficulty must be one of Easy, Medium or Hard")
		}
	}
	name := strings.TrimSpace(req.RoundName)
	if name == "" {
		return nil, apperror.BadRequest("Round name is required")
	}

	position, err := u.repo.GetPosition(ctx, positionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if position == nil {
		return nil, apperror.NotFound("Position not found")
	}

	r := &domain.InterviewRound{
		PositionID:  position.ID,
		RoundName:   name,
		Description: strings.TrimSpace(req.Description),
		Difficulty:  difficulty,
		CreatedBy:   &userID,
	}
	if err := u.repo.CreateRound(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *processUsecase) CreateTip(ctx context.Context, roundID int64, req domain.CreateTipRequest) (*domain.InterviewTip, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Tip)
	if text == "" {
		return nil, apperror.BadRequest("Tip cannot be empty")
	}
	if utf8.RuneCountInString(text) > domain.MaxTipLength {
		return nil, apperror.BadRequest(fmt.Sprintf("Tip must be at most %d characters", domain.MaxTipLength))
	}

	round, err := u.repo.GetRound(ctx, roundID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if round == nil {
		return nil, apperror.NotFound("Round not found")
	}

	t := &domain.InterviewTip{RoundID: round.ID, Tip: text, CreatedBy: &userID}
	if err := u.repo.CreateTip(ctx, t); err != nil {
		return nil, apperror.Internal(err)
	}
	return t, nil
}

func (u *processUsecase) DeleteTip(ctx context.Context, tipID int64) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	t, err := u.repo.GetTip(ctx, tipID)
	if err != nil {
		return apperror.Internal(err)
	}
	if t == nil {
		return apperror.NotFound("Tip not found")
	}
	isAuthor := t.CreatedBy != nil && *t.CreatedBy == userID
	if !isAuthor && !isAdmin(ctx) {
		return apperror.Forbidden("Only the author or an admin can delete this tip")
	}
	return u.repo.DeleteTip(ctx, tipID)
}
