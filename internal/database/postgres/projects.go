package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/database"
	"github.com/kozaktomas/album-editor/internal/editor"
)

// ProjectRepository provides PostgreSQL-backed album project storage
type ProjectRepository struct {
	pool *Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// SaveProject replaces the project, its pages and its assets in one transaction.
func (r *ProjectRepository) SaveProject(ctx context.Context, doc *editor.Document) error {
	if doc == nil || doc.ID == "" {
		return errors.New("save project: document id is required")
	}
	settings, err := json.Marshal(doc.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, size_label, width_cm, height_cm, bleed_mm, settings, current_page, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			size_label = EXCLUDED.size_label,
			width_cm = EXCLUDED.width_cm,
			height_cm = EXCLUDED.height_cm,
			bleed_mm = EXCLUDED.bleed_mm,
			settings = EXCLUDED.settings,
			current_page = EXCLUDED.current_page,
			updated_at = EXCLUDED.updated_at`,
		doc.ID, doc.Name, doc.Size.Label, doc.Size.WidthCm, doc.Size.HeightCm,
		doc.BleedMm, string(settings), doc.CurrentPage, now)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_pages WHERE project_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_assets WHERE project_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("clear assets: %w", err)
	}

	for i, page := range doc.Pages {
		items, err := marshalItems(page.Items)
		if err != nil {
			return fmt.Errorf("page %s: %w", page.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO project_pages (project_id, position, page_id, background, items) VALUES ($1, $2, $3, $4, $5)`,
			doc.ID, i, page.ID, page.Background, items)
		if err != nil {
			return fmt.Errorf("insert page: %w", err)
		}
	}

	for i, a := range doc.Assets {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO project_assets (project_id, position, asset_id, url, source_width, source_height) VALUES ($1, $2, $3, $4, $5, $6)`,
			doc.ID, i, a.ID, a.URL, a.SourceWidth, a.SourceHeight)
		if err != nil {
			return fmt.Errorf("insert asset: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit project: %w", err)
	}
	return nil
}

// marshalItems encodes items as a JSON array, never null.
func marshalItems(items []album.Item) (string, error) {
	if items == nil {
		items = []album.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	return string(data), nil
}

func unmarshalItems(data []byte) ([]album.Item, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	items := make([]album.Item, 0, len(raws))
	for _, raw := range raws {
		it, err := album.UnmarshalItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// GetProject loads a project document, returns nil if not found.
func (r *ProjectRepository) GetProject(ctx context.Context, id string) (*editor.Document, error) {
	doc := &editor.Document{ID: id}
	var settings []byte
	err := r.pool.QueryRow(ctx,
		`SELECT name, size_label, width_cm, height_cm, bleed_mm, settings, current_page FROM projects WHERE id = $1`, id).
		Scan(&doc.Name, &doc.Size.Label, &doc.Size.WidthCm, &doc.Size.HeightCm, &doc.BleedMm, &settings, &doc.CurrentPage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	doc.Settings = editor.DefaultSettings()
	if err := json.Unmarshal(settings, &doc.Settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if doc.Pages, err = r.getPages(ctx, id); err != nil {
		return nil, err
	}
	if doc.Assets, err = r.getAssets(ctx, id); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *ProjectRepository) getPages(ctx context.Context, projectID string) ([]*album.Page, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT page_id, background, items FROM project_pages WHERE project_id = $1 ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get pages: %w", err)
	}
	defer rows.Close()

	var pages []*album.Page
	for rows.Next() {
		var p album.Page
		var items []byte
		if err := rows.Scan(&p.ID, &p.Background, &items); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		if p.Items, err = unmarshalItems(items); err != nil {
			return nil, fmt.Errorf("page %s: %w", p.ID, err)
		}
		pages = append(pages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return pages, nil
}

func (r *ProjectRepository) getAssets(ctx context.Context, projectID string) ([]album.Asset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT asset_id, url, source_width, source_height FROM project_assets WHERE project_id = $1 ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get assets: %w", err)
	}
	defer rows.Close()

	var assets []album.Asset
	for rows.Next() {
		var a album.Asset
		if err := rows.Scan(&a.ID, &a.URL, &a.SourceWidth, &a.SourceHeight); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return assets, nil
}

// ListProjects returns all projects, most recently updated first.
func (r *ProjectRepository) ListProjects(ctx context.Context) ([]database.ProjectSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.size_label, p.width_cm, p.height_cm, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM project_pages pp WHERE pp.project_id = p.id),
			(SELECT COUNT(*) FROM project_assets pa WHERE pa.project_id = p.id)
		FROM projects p
		ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []database.ProjectSummary
	for rows.Next() {
		var p database.ProjectSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Size.Label, &p.Size.WidthCm, &p.Size.HeightCm,
			&p.CreatedAt, &p.UpdatedAt, &p.PageCount, &p.AssetCount); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// DeleteProject removes a project. Pages and assets go with it.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
