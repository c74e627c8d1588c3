package catalog

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

const entryColumns = "id, name, enriched, created_at, updated_at"

const detailColumns = "entry_id, name, about, short_description, header_image_url, website_url, is_game, is_free, required_age, developers, publishers, genres, release_date, price_info, categories, created_at"

type scanner interface{ Scan(dest ...any) error }

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry      Entry
		enriched   int64
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := row.Scan(&entry.ID, &entry.Name, &enriched, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	entry.Enriched = enriched != 0
	if created, err := parseTimeString(createdRaw.String); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		entry.UpdatedAt = updated
	}
	return &entry, nil
}

func scanDetail(row scanner) (*Detail, error) {
	var (
		detail     Detail
		isGame     int64
		isFree     int64
		priceInfo  sql.NullString
		categories sql.NullString
		createdRaw sql.NullString
	)
	if err := row.Scan(
		&detail.EntryID,
		&detail.Name,
		&detail.About,
		&detail.ShortDescription,
		&detail.HeaderImageURL,
		&detail.WebsiteURL,
		&isGame,
		&isFree,
		&detail.RequiredAge,
		&detail.Developers,
		&detail.Publishers,
		&detail.Genres,
		&detail.ReleaseDate,
		&priceInfo,
		&categories,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	detail.IsGame = isGame != 0
	detail.IsFree = isFree != 0
	if priceInfo.Valid && priceInfo.String != "" {
		detail.PriceInfo = []byte(priceInfo.String)
	}
	if categories.Valid && categories.String != "" {
		detail.Categories = []byte(categories.String)
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		detail.CreatedAt = created
	}
	return &detail, nil
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func nullableBytes(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return string(value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

// likeEscaper neutralises LIKE wildcards; queries pair it with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
