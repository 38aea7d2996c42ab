package usecase

import (
	"context"
	"sort"
	"strings"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/repository"

	"go.uber.org/zap"
)

const boardJDPrefix = 40

type BoardGroup struct {
	JobDescription string                `json:"job_description"`
	Candidates     []candidate.Candidate `json:"candidates"`
}

type BoardRound struct {
	Status candidate.Status `json:"status"`
	Label  string           `json:"label"`
	Groups []BoardGroup     `json:"groups"`
}

type BoardUsecase interface {
	Board(ctx context.Context) ([]BoardRound, error)
}

type Board struct {
	candidates repository.CandidateRepository
	log        *zap.Logger
}

func NewBoardUsecase(candidates repository.CandidateRepository, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{candidates: candidates, log: log}
}

// BoardGroupKey is the heading a job description is filed under.
func BoardGroupKey(jd string) string {
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return "General"
	}
	return truncateRunes(jd, boardJDPrefix) + "..."
}

func (u *Board) Board(ctx context.Context) ([]BoardRound, error) {
	all, err := u.candidates.ListAll(ctx)
	if err != nil {
		u.log.Error("board_load_failed", zap.Error(err))
		return nil, ErrInternal
	}

	byStatus := make(map[candidate.Status][]candidate.Candidate, len(candidate.BoardStatuses))
	for _, c := range all {
		col := candidate.BoardColumn(c.Status)
		byStatus[col] = append(byStatus[col], c)
	}

	rounds := make([]BoardRound, 0, len(candidate.BoardStatuses))
	for _, st := range candidate.BoardStatuses {
		list := byStatus[st]
		sort.SliceStable(list, func(i, j int) bool { return list[i].TestScore > list[j].TestScore })

		groups := []BoardGroup{}
		index := map[string]int{}
		for _, c := range list {
			key := BoardGroupKey(c.JobDescription)
			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, BoardGroup{JobDescription: key})
			}
			groups[i].Candidates = append(groups[i].Candidates, c)
		}
		rounds = append(rounds, BoardRound{Status: st, Label: candidate.RoundLabel(st), Groups: groups})
	}
	return rounds, nil
}
