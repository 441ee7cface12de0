package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/basedlist/directory/internal/models"
)

func (r *SQLiteRepo) UpsertENSProfile(ctx context.Context, p *models.ENSProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	recordsJSON, err := json.Marshal(p.Records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	skillsJSON, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	ts := now()
	_, err = r.conn.Exec(ctx, `INSERT INTO ens_profiles (name, address, avatar, records, content_hash, skills, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			address=excluded.address,
			avatar=excluded.avatar,
			records=excluded.records,
			content_hash=excluded.content_hash,
			skills=excluded.skills,
			updated=excluded.updated`,
		p.Name, p.Address, p.Avatar, string(recordsJSON), p.ContentHash, string(skillsJSON), ts, ts)
	return err
}

func (r *SQLiteRepo) GetENSProfileByName(ctx context.Context, name string) (*models.ENSProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, address, avatar, records, content_hash, skills, created, updated FROM ens_profiles WHERE name = ?`, name)

	var p models.ENSProfile
	var recordsJSON, skillsJSON string
	if err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Avatar, &recordsJSON, &p.ContentHash, &skillsJSON, &p.Created, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(recordsJSON), &p.Records); err != nil {
		return nil, fmt.Errorf("unmarshal records for %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills for %s: %w", name, err)
	}

	return &p, nil
}

func (r *SQLiteRepo) ListENSProfileSummaries(ctx context.Context) ([]models.SearchResult, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT name, address, avatar FROM ens_profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SearchResult
	for rows.Next() {
		var name, address, avatar string
		if err := rows.Scan(&name, &address, &avatar); err != nil {
			return nil, err
		}
		res := models.SearchResult{Name: name}
		if address != "" {
			res.Address = &address
		}
		if avatar != "" {
			res.Avatar = &avatar
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
