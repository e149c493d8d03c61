package service

import (
	"Redwatch/internal/model"
	"Redwatch/internal/pkg/database"
	"Redwatch/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

// GateService 持久化闸门：以 note_id 为键跨运行去重，只放行首次出现的帖子
type GateService interface {
	Migrate(ctx context.Context) error
	FilterNew(ctx context.Context, notes []*model.Note) ([]*model.Note, error)
	Exists(ctx context.Context, noteID string) (bool, error)
	Recent(ctx context.Context, limit int) ([]*model.Note, error)
}

// GateServiceImpl 每次操作独立建连、用完即关
type GateServiceImpl struct {
	open database.Opener
}

func NewGateService(open database.Opener) GateService {
	return &GateServiceImpl{
		open: open,
	}
}

func (s *GateServiceImpl) withRepo(fn func(repo repository.NoteRepo) error) error {
	db, err := s.open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer func(db *gorm.DB) {
		if err := database.Close(db); err != nil {
			log.Warn("close database failed", "err", err)
		}
	}(db)
	return fn(repository.NewNoteRepo(db))
}

func (s *GateServiceImpl) Migrate(ctx context.Context) error {
	return s.withRepo(func(repo repository.NoteRepo) error {
		return repo.Migrate(ctx)
	})
}

// FilterNew 逐条原子插入，返回本次新插入的帖子；返回前所有新帖子均已落库
// 中途出错时返回已成功插入的部分以及错误
func (s *GateServiceImpl) FilterNew(ctx context.Context, notes []*model.Note) ([]*model.Note, error) {
	fresh := make([]*model.Note, 0, len(notes))
	if len(notes) == 0 {
		return fresh, nil
	}

	err := s.withRepo(func(repo repository.NoteRepo) error {
		for _, n := range notes {
			row := *n
			row.ID = 0
			row.CreatedAt = time.Time{}
			inserted, err := repo.Insert(ctx, &row)
			if err != nil {
				return fmt.Errorf("insert note %s: %w", n.NoteID, err)
			}
			if inserted {
				fresh = append(fresh, &row)
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrStoreUnavailable) {
		log.ErrorContext(ctx, "persist notes interrupted", "persisted", len(fresh), "err", err)
	}

	log.InfoContext(ctx, "persistence gate", "candidates", len(notes), "new", len(fresh))
	return fresh, err
}

func (s *GateServiceImpl) Exists(ctx context.Context, noteID string) (bool, error) {
	var exists bool
	err := s.withRepo(func(repo repository.NoteRepo) error {
		var err error
		exists, err = repo.Exists(ctx, noteID)
		return err
	})
	return exists, err
}

func (s *GateServiceImpl) Recent(ctx context.Context, limit int) ([]*model.Note, error) {
	var notes []*model.Note
	err := s.withRepo(func(repo repository.NoteRepo) error {
		var err error
		notes, err = repo.Recent(ctx, limit)
		return err
	})
	return notes, err
}
