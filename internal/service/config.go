package service

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	ConfigWeightUnit         = "weight_unit"
	ConfigHeightUnit         = "height_unit"
	ConfigAdherenceTolerance = "adherence_tolerance"
)

// Preferences are the persisted display and analytics settings.
type Preferences struct {
	WeightUnit WeightUnit
	HeightUnit HeightUnit
	Tolerance  float64
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	value = strings.TrimSpace(value)
	normalized, err := normalizeConfigValue(key, value)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, normalized)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// LoadPreferences reads the known config keys, falling back to metric
// units and the default adherence tolerance.
func LoadPreferences(db *sql.DB) (Preferences, error) {
	prefs := Preferences{WeightUnit: WeightKg, HeightUnit: HeightCm, Tolerance: DefaultAdherenceTolerance}
	cfg, err := ListConfig(db)
	if err != nil {
		return prefs, err
	}
	if v, ok := cfg[ConfigWeightUnit]; ok {
		if prefs.WeightUnit, err = ParseWeightUnit(v); err != nil {
			return prefs, err
		}
	}
	if v, ok := cfg[ConfigHeightUnit]; ok {
		if prefs.HeightUnit, err = ParseHeightUnit(v); err != nil {
			return prefs, err
		}
	}
	if v, ok := cfg[ConfigAdherenceTolerance]; ok {
		if prefs.Tolerance, err = parseTolerance(v); err != nil {
			return prefs, err
		}
	}
	return prefs, nil
}

func normalizeConfigValue(key, value string) (string, error) {
	switch key {
	case ConfigWeightUnit:
		u, err := ParseWeightUnit(value)
		return string(u), err
	case ConfigHeightUnit:
		u, err := ParseHeightUnit(value)
		return string(u), err
	case ConfigAdherenceTolerance:
		t, err := parseTolerance(value)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unknown config key %q (use %s, %s, or %s)", key, ConfigWeightUnit, ConfigHeightUnit, ConfigAdherenceTolerance)
	}
}

func parseTolerance(value string) (float64, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(t) || t < 0 || t > 1 {
		return 0, fmt.Errorf("adherence tolerance must be a fraction between 0 and 1")
	}
	return t, nil
}
