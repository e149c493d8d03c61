package repository

import (
	"Redwatch/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepo interface {
	Migrate(ctx context.Context) error
	Exists(ctx context.Context, noteID string) (bool, error)
	Insert(ctx context.Context, note *model.Note) (bool, error)
	Recent(ctx context.Context, limit int) ([]*model.Note, error)
	Count(ctx context.Context) (int64, error)
}

type NoteRepoImpl struct {
	db *gorm.DB
}

func NewNoteRepo(db *gorm.DB) NoteRepo {
	return &NoteRepoImpl{
		db: db,
	}
}

func (s *NoteRepoImpl) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Note{})
}

func (s *NoteRepoImpl) Exists(ctx context.Context, noteID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Note{}).Where("note_id = ?", noteID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 原子地检查并插入，note_id 已存在时返回 false 且不视为错误
func (s *NoteRepoImpl) Insert(ctx context.Context, note *model.Note) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "note_id"}}, DoNothing: true}).
		Create(note)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *NoteRepoImpl) Recent(ctx context.Context, limit int) ([]*model.Note, error) {
	var notes []*model.Note
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *NoteRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Note{}).Count(&count).Error
	return count, err
}
