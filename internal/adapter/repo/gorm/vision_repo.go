package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lotusadvisor/internal/adapter/repo/gorm/model"
	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"

	"gorm.io/gorm"
)

// VisionRepo persists visions. The fundamental lotus is stored by catalog
// ID and rehydrated on load, so its effect definition always comes from the
// static catalog rather than a serialized copy.
type VisionRepo struct {
	db      *gorm.DB
	catalog ports.CatalogProvider
}

func NewVisionRepo(db *gorm.DB, catalog ports.CatalogProvider) VisionRepo {
	return VisionRepo{db: db, catalog: catalog}
}

func (r VisionRepo) GetByPlayerID(ctx context.Context, playerID string) (garden.Vision, error) {
	var m model.Vision
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return garden.Vision{}, ports.ErrNotFound
		}
		return garden.Vision{}, err
	}

	var bubbles []garden.Bubble
	if len(m.Bubbles) > 0 {
		if err := json.Unmarshal(m.Bubbles, &bubbles); err != nil {
			return garden.Vision{}, fmt.Errorf("decode bubbles for %s: %w", playerID, err)
		}
	}
	out := garden.Vision{
		PlayerID:  playerID,
		Bubbles:   bubbles,
		Capacity:  int(m.Capacity),
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}
	if m.FundamentalID != "" {
		lotus, err := r.catalog.ByID(ctx, m.FundamentalID)
		if err != nil {
			return garden.Vision{}, fmt.Errorf("rehydrate fundamental %q: %w", m.FundamentalID, err)
		}
		out.Fundamental = &lotus
	}
	return out, nil
}

func (r VisionRepo) SaveWithVersion(ctx context.Context, vision garden.Vision, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)

	bubbles, err := json.Marshal(vision.Bubbles)
	if err != nil {
		return fmt.Errorf("encode bubbles for %s: %w", vision.PlayerID, err)
	}
	fundamentalID := ""
	if vision.Fundamental != nil {
		fundamentalID = vision.Fundamental.ID
	}

	if expectedVersion == 0 {
		m := model.Vision{
			PlayerID:      vision.PlayerID,
			Capacity:      int32(vision.Capacity),
			Bubbles:       bubbles,
			FundamentalID: fundamentalID,
			Version:       vision.Version,
			UpdatedAt:     vision.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.Vision{}).
		Where("player_id = ? AND version = ?", vision.PlayerID, expectedVersion).
		Updates(map[string]any{
			"capacity":       int32(vision.Capacity),
			"bubbles":        bubbles,
			"fundamental_id": fundamentalID,
			"version":        vision.Version,
			"updated_at":     vision.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
