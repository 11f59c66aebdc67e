package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/provider"
	"github.com/charlie0129/powerstate/pkg/utils/ptr"
)

const DefaultPath = "/etc/powerstate.json"

var (
	defaultFileConfig = &RawFileConfig{
		Provider:            ptr.To(provider.NameAuto),
		SysfsRoot:           ptr.To(provider.DefaultSysfsRoot),
		FixturePath:         ptr.To(""),
		PollIntervalSeconds: ptr.To(30),
		AllowNonRootAccess:  ptr.To(false),
	}
)

var _ Config = &File{}

// File is a Config stored in a JSON file, or a TOML file when the path ends
// in .toml.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string

	// providerOverride wins over the file and survives Load. It is never saved.
	providerOverride string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

type RawFileConfig struct {
	Provider            *string `json:"provider,omitempty" toml:"provider,omitempty"`
	SysfsRoot           *string `json:"sysfsRoot,omitempty" toml:"sysfsRoot,omitempty"`
	FixturePath         *string `json:"fixturePath,omitempty" toml:"fixturePath,omitempty"`
	PollIntervalSeconds *int    `json:"pollIntervalSeconds,omitempty" toml:"pollIntervalSeconds,omitempty"`
	AllowNonRootAccess  *bool   `json:"allowNonRootAccess,omitempty" toml:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		Provider:            ptr.To(c.Provider()),
		SysfsRoot:           ptr.To(c.SysfsRoot()),
		FixturePath:         ptr.To(c.FixturePath()),
		PollIntervalSeconds: ptr.To(c.PollIntervalSeconds()),
		AllowNonRootAccess:  ptr.To(c.AllowNonRootAccess()),
	}, nil
}

func (f *File) isTOML() bool {
	return strings.EqualFold(filepath.Ext(f.filepath), ".toml")
}

func (f *File) Provider() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.providerOverride != "" {
		return f.providerOverride
	}
	return ptr.Deref(f.c.Provider, *defaultFileConfig.Provider)
}

func (f *File) SysfsRoot() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	root := ptr.Deref(f.c.SysfsRoot, *defaultFileConfig.SysfsRoot)
	if root == "" {
		root = *defaultFileConfig.SysfsRoot
	}

	return root
}

func (f *File) FixturePath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.FixturePath, *defaultFileConfig.FixturePath)
}

func (f *File) PollIntervalSeconds() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	interval := ptr.Deref(f.c.PollIntervalSeconds, *defaultFileConfig.PollIntervalSeconds)
	if interval < 1 {
		interval = 1
	}

	return interval
}

func (f *File) AllowNonRootAccess() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) SetProvider(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.Provider = &name
}

// OverrideProvider selects a backend for this process only, e.g. from a
// command line flag. An empty name removes the override.
func (f *File) OverrideProvider(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.providerOverride = name
}

func (f *File) SetPollIntervalSeconds(i int) {
	if i < 1 {
		panic("poll interval must be at least 1 second")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.PollIntervalSeconds = &i
}

func (f *File) SetAllowNonRootAccess(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = &b
}

// ProviderOptions returns the backend options described by this config.
func (f *File) ProviderOptions() provider.Options {
	return provider.Options{
		SysfsRoot:   f.SysfsRoot(),
		FixturePath: f.FixturePath(),
	}
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if f.isTOML() {
		_, err = toml.Decode(string(b), &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	if f.isTOML() {
		err = toml.NewEncoder(fp).Encode(f.c)
	} else {
		enc := json.NewEncoder(fp)
		enc.SetIndent("", "  ")
		err = enc.Encode(f.c)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"provider":            f.Provider(),
		"sysfsRoot":           f.SysfsRoot(),
		"fixturePath":         f.FixturePath(),
		"pollIntervalSeconds": f.PollIntervalSeconds(),
		"allowNonRootAccess":  f.AllowNonRootAccess(),
	}
}
