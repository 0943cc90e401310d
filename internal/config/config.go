package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"routine/internal/dates"
	"routine/internal/locale"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "routine.db"
	DefaultLogName        = "routine.log"
	configEnv             = "ROUTINE_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Select   string `toml:"select"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Add      string `toml:"add"`
	Complete string `toml:"complete"`
	Snooze   string `toml:"snooze"`
	Tasks    string `toml:"tasks"`
	Look     string `toml:"look"`
	Edit     string `toml:"edit"`
	Remove   string `toml:"remove"`
	Purge    string `toml:"purge"`
	Due      string `toml:"due"`
	Freq     string `toml:"freq"`
	Category string `toml:"category"`
	Unsched  string `toml:"unschedule"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	Language      string `toml:"language"`
	DateOrder     string `toml:"date_order"`
	DateDelimiter string `toml:"date_delimiter"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath prefers $ROUTINE_CONFIG, then the user config dir, then
// the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "routine", DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there on first launch.
// Relative db and log paths are taken relative to the config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	cfg.Keys = cfg.Keys.withDefaults(defaultConfig().Keys)
	return cfg.resolve(path), nil
}

// Locale resolves the language and any date layout override.
func (c Config) Locale() (locale.Locale, error) {
	loc, err := locale.Lookup(c.Language)
	if err != nil {
		return locale.Locale{}, err
	}
	if c.DateOrder == "" && c.DateDelimiter == "" {
		return loc, nil
	}
	order, delim := string(loc.Layout.Order), loc.Layout.Delimiter
	if c.DateOrder != "" {
		order = c.DateOrder
	}
	if c.DateDelimiter != "" {
		delim = c.DateDelimiter
	}
	layout, err := dates.ParseLayout(order, delim)
	if err != nil {
		return locale.Locale{}, err
	}
	return loc.WithLayout(layout), nil
}

func (c Config) resolve(configPath string) Config {
	base := filepath.Dir(configPath)
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(base, c.LogFile)
	}
	return c
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (k Keymap) withDefaults(d Keymap) Keymap {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Select, d.Select)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	fill(&k.Add, d.Add)
	fill(&k.Complete, d.Complete)
	fill(&k.Snooze, d.Snooze)
	fill(&k.Tasks, d.Tasks)
	fill(&k.Look, d.Look)
	fill(&k.Edit, d.Edit)
	fill(&k.Remove, d.Remove)
	fill(&k.Purge, d.Purge)
	fill(&k.Due, d.Due)
	fill(&k.Freq, d.Freq)
	fill(&k.Category, d.Category)
	fill(&k.Unsched, d.Unsched)
	return k
}

func defaultConfig() Config {
	return Config{
		DBPath:   DefaultDBName,
		LogFile:  DefaultLogName,
		LogLevel: "info",
		Language: "en",
		Keys: Keymap{
			Quit:     "q",
			Up:       "k",
			Down:     "j",
			Select:   " ",
			Confirm:  "enter",
			Cancel:   "esc",
			Add:      "a",
			Complete: "c",
			Snooze:   "s",
			Tasks:    "t",
			Look:     "l",
			Edit:     "e",
			Remove:   "x",
			Purge:    "P",
			Due:      "d",
			Freq:     "f",
			Category: "g",
			Unsched:  "u",
		},
	}
}
