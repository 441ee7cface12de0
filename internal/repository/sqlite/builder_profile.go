package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/basedlist/directory/internal/models"
)

func marshalBuilderFields(b *models.BuilderProfile) (links, socials, skills string, err error) {
	lb, err := json.Marshal(b.Links)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal links: %w", err)
	}
	sb, err := json.Marshal(b.Socials)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal socials: %w", err)
	}
	kb, err := json.Marshal(b.Skills)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal skills: %w", err)
	}
	return string(lb), string(sb), string(kb), nil
}

func (r *SQLiteRepo) CreateBuilderProfile(ctx context.Context, b *models.BuilderProfile) (int64, error) {
	if b == nil {
		return 0, fmt.Errorf("builder profile is nil")
	}

	links, socials, skills, err := marshalBuilderFields(b)
	if err != nil {
		return 0, err
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO profiles (name, ens_name, bio, profile_image, links, socials, eth_address, is_ens_profile, skills, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Name, b.ENSName, b.Bio, b.ProfileImage, links, socials, b.EthAddress, boolToInt(b.IsENSProfile), skills, ts, ts)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateBuilderProfile rewrites every derived field of the row identified by
// b.ID, preserving its identity and created timestamp.
func (r *SQLiteRepo) UpdateBuilderProfile(ctx context.Context, b *models.BuilderProfile) error {
	if b == nil {
		return fmt.Errorf("builder profile is nil")
	}

	links, socials, skills, err := marshalBuilderFields(b)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, `UPDATE profiles SET name=?, ens_name=?, bio=?, profile_image=?, links=?, socials=?, eth_address=?, is_ens_profile=?, skills=?, updated=? WHERE id=?`,
		b.Name, b.ENSName, b.Bio, b.ProfileImage, links, socials, b.EthAddress, boolToInt(b.IsENSProfile), skills, now(), b.ID)
	return err
}

func (r *SQLiteRepo) FindBuilderByNameOrENS(ctx context.Context, name string) (*models.BuilderProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, ens_name, bio, profile_image, links, socials, eth_address, is_ens_profile, skills, created, updated FROM profiles WHERE name = ? OR ens_name = ? LIMIT 1`, name, name)
	return scanBuilder(row.Scan)
}

func (r *SQLiteRepo) ListBuilders(ctx context.Context) ([]models.BuilderProfile, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, ens_name, bio, profile_image, links, socials, eth_address, is_ens_profile, skills, created, updated FROM profiles ORDER BY updated DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BuilderProfile
	for rows.Next() {
		b, err := scanBuilder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func scanBuilder(scan func(dest ...any) error) (*models.BuilderProfile, error) {
	var b models.BuilderProfile
	var links, socials, skills string
	var isENS int
	err := scan(&b.ID, &b.Name, &b.ENSName, &b.Bio, &b.ProfileImage, &links, &socials, &b.EthAddress, &isENS, &skills, &b.Created, &b.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	b.IsENSProfile = isENS != 0
	if err := json.Unmarshal([]byte(links), &b.Links); err != nil {
		return nil, fmt.Errorf("unmarshal links: %w", err)
	}
	if err := json.Unmarshal([]byte(socials), &b.Socials); err != nil {
		return nil, fmt.Errorf("unmarshal socials: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &b.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}

	return &b, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
