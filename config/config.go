// Package config loads the YAML document describing a table's mirror
// connection and ranking parameters, structurally following
// database.ParseGeneratorConfig: a private YAML-tagged struct decoded
// with KnownFields(true), translated into the exported Config type.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ftquery/ftsearch/mirror"
)

// Connection is the subset of DSN components every mirror dialect
// adapter (mirror/mysql, mirror/postgres, mirror/mssql, mirror/sqlite3)
// accepts; fields irrelevant to a given dialect are left zero.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"db_name"`
	Socket   string `yaml:"socket"`
	SslMode  string `yaml:"ssl_mode"`
}

// Config is the fully decoded, exported configuration for one table: the
// mirror dialect and its connection, the id_field/replacement-field
// mapping, the Top-K and one-word-optimisation bounds, and the
// per-field field_rank defaults the caller looks up before calling
// engine.Execute.
type Config struct {
	Dialect          mirror.Dialect
	Connection       Connection
	IDField          string
	ReplacementField string
	MirrorTable      string
	Field            string
	Top              int
	MinResultCount   int
	FieldRanks       map[string]int64
}

// HasReplacementField reports whether id_field is a replacement field
// rather than the doc_id itself, in which case callers translate doc_id
// to and from the mirror's external id.
func (c Config) HasReplacementField() bool {
	return c.ReplacementField != ""
}

// FieldRank looks up the configured rank for field, defaulting to 1 (the
// invariant floor every field rank is clamped to) when the field has no
// explicit entry.
func (c Config) FieldRank(field string) int64 {
	if r, ok := c.FieldRanks[field]; ok && r > 0 {
		return r
	}
	return 1
}

// MirrorConfig projects the fields mirror.PostFilter needs out of Config.
func (c Config) MirrorConfig() mirror.Config {
	return mirror.Config{
		IDField:        c.IDField,
		MirrorTable:    c.MirrorTable,
		Field:          c.Field,
		Dialect:        c.Dialect,
		MinResultCount: c.MinResultCount,
	}
}

type yamlConfig struct {
	Dialect          string           `yaml:"dialect"`
	Connection       Connection       `yaml:"connection"`
	IDField          string           `yaml:"id_field"`
	ReplacementField string           `yaml:"replacement_field"`
	MirrorTable      string           `yaml:"mirror_table"`
	Field            string           `yaml:"field"`
	Top              int              `yaml:"top"`
	MinResultCount   int              `yaml:"min_result_count"`
	FieldRanks       map[string]int64 `yaml:"field_ranks"`
}

func dialectFromString(s string) (mirror.Dialect, error) {
	switch s {
	case "mysql":
		return mirror.MySQL, nil
	case "postgres":
		return mirror.Postgres, nil
	case "mssql":
		return mirror.MSSQL, nil
	case "sqlite3":
		return mirror.SQLite3, nil
	default:
		return 0, fmt.Errorf("config: unknown dialect %q", s)
	}
}

// LoadString decodes a YAML document already in memory, the form
// ParseGeneratorConfigString takes for tests and embedded defaults.
func LoadString(yamlDoc string) (Config, error) {
	if yamlDoc == "" {
		return Config{}, fmt.Errorf("config: empty document")
	}
	return parseFromBytes([]byte(yamlDoc))
}

// Load reads and decodes configFile, the form ParseGeneratorConfig takes
// for CLI binaries.
func Load(configFile string) (Config, error) {
	buf, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", configFile, err)
	}
	return parseFromBytes(buf)
}

func parseFromBytes(buf []byte) (Config, error) {
	var raw yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}

	dialect, err := dialectFromString(raw.Dialect)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Dialect:          dialect,
		Connection:       raw.Connection,
		IDField:          raw.IDField,
		ReplacementField: raw.ReplacementField,
		MirrorTable:      raw.MirrorTable,
		Field:            raw.Field,
		Top:              raw.Top,
		MinResultCount:   raw.MinResultCount,
		FieldRanks:       raw.FieldRanks,
	}, nil
}
