package plugin

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrPluginNotFound is returned when a requested plugin cannot be found.
var ErrPluginNotFound = errors.New("plugin not found")

// Manager manages plugin discovery and access.
type Manager struct {
	pluginDirs []string
	plugins    map[string]*Plugin
	mu         sync.RWMutex
}

// NewManager creates a plugin Manager searching the given directories in
// order. When two directories hold a plugin with the same name the first
// one wins.
func NewManager(pluginDirs ...string) *Manager {
	return &Manager{
		pluginDirs: pluginDirs,
		plugins:    make(map[string]*Plugin),
	}
}

// Discover scans the plugin directories for plugin.json files and loads them.
// Each subdirectory of a plugin directory is expected to be a plugin with a
// plugin.json manifest. Missing directories are skipped.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plugins = make(map[string]*Plugin)

	for _, dir := range m.pluginDirs {
		if err := m.discoverDir(dir); err != nil {
			return err
		}
	}

	return nil
}

func (m *Manager) discoverDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginPath := filepath.Join(dir, entry.Name())
		manifestPath := filepath.Join(pluginPath, "plugin.json")

		manifestData, err := os.ReadFile(manifestPath)
		if err != nil {
			continue // no readable manifest
		}

		var manifest Manifest
		if err := json.Unmarshal(manifestData, &manifest); err != nil {
			log.Printf("skipping plugin %s: invalid manifest: %v", pluginPath, err)
			continue
		}
		if manifest.Name == "" || manifest.Executable == "" {
			log.Printf("skipping plugin %s: manifest needs name and executable", pluginPath)
			continue
		}
		if _, seen := m.plugins[manifest.Name]; seen {
			continue
		}

		m.plugins[manifest.Name] = &Plugin{
			Manifest:   manifest,
			Path:       pluginPath,
			Executable: filepath.Join(pluginPath, manifest.Executable),
		}
	}

	return nil
}

// Get returns a plugin by name.
// Returns ErrPluginNotFound if the plugin does not exist.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugin, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}

	return plugin, nil
}

// List returns all discovered plugins sorted by name.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugins := make([]*Plugin, 0, len(m.plugins))
	for _, plugin := range m.plugins {
		plugins = append(plugins, plugin)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Manifest.Name < plugins[j].Manifest.Name
	})

	return plugins
}

// PluginDirs returns the directories searched for plugins.
func (m *Manager) PluginDirs() []string {
	return m.pluginDirs
}
