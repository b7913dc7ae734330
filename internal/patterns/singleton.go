package patterns

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/opserr"
)

var (
	settingsInstance *models.Settings
	settingsMutex    sync.Mutex
)

// GetSettings returns the shared settings, creating them on first use.
// path is only read by the call that creates the instance; a JSON or YAML
// file there is merged onto the defaults.
func GetSettings(path string) *models.Settings {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	if settingsInstance == nil {
		logrus.Debugln("Creating settings singleton")
		settingsInstance = loadSettings(path)
	}

	return settingsInstance
}

// ResetSettings drops the shared settings so the next GetSettings call
// loads them again.
func ResetSettings() {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	settingsInstance = nil
}

func loadSettings(path string) *models.Settings {

	settings := models.DefaultSettings()

	if len(path) == 0 {
		return settings
	}

	overrides, err := common.ReadFileToInterface[map[string]any](path)
	if err == nil {
		// feature_flags replaces the default flags instead of merging
		if _, ok := (*overrides)["feature_flags"]; ok {
			settings.FeatureFlags = nil
		}
		// Keys missing from the file keep their default values.
		err = common.ConvertInterfaceToInterface(overrides, settings)
	}

	if err != nil {
		logrus.WithError(err).WithField("path", path).Warnln("Could not load settings, using defaults")
		return models.DefaultSettings()
	}

	logrus.WithField("path", path).Infoln("Loaded settings")

	return settings
}

const (
	DefaultPoolSize = 10
	DefaultPoolHost = "localhost"
)

// ConnectionPool hands out at most Size connections to Host.
type ConnectionPool struct {
	mu     sync.Mutex
	size   int
	host   string
	active map[uuid.UUID]*models.PoolConnection
}

var (
	poolInstance *ConnectionPool
	poolMutex    sync.Mutex
)

// GetConnectionPool returns the shared pool. Size and host only apply to
// the call that creates it.
func GetConnectionPool(size int, host string) *ConnectionPool {
	poolMutex.Lock()
	defer poolMutex.Unlock()

	if poolInstance == nil {
		if size <= 0 {
			size = DefaultPoolSize
		}
		if len(host) == 0 {
			host = DefaultPoolHost
		}
		poolInstance = &ConnectionPool{
			size:   size,
			host:   host,
			active: make(map[uuid.UUID]*models.PoolConnection),
		}
		logrus.WithFields(logrus.Fields{
			"host": host,
			"size": size,
		}).Infoln("Connection pool created")
	}

	return poolInstance
}

func ResetConnectionPool() {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	poolInstance = nil
}

func (p *ConnectionPool) Size() int {
	return p.size
}

func (p *ConnectionPool) Host() string {
	return p.host
}

func (p *ConnectionPool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

// Acquire returns a new connection, or a resource limit error when every
// slot is in use.
func (p *ConnectionPool) Acquire() (*models.PoolConnection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.active) >= p.size {
		return nil, opserr.NewResourceLimit("connection pool", p.size, len(p.active), "local", p.host)
	}

	conn := &models.PoolConnection{
		ID:   uuid.New(),
		Host: p.host,
	}
	p.active[conn.ID] = conn

	return conn, nil
}

// Release returns conn to the pool. Releasing an unknown connection is an
// error.
func (p *ConnectionPool) Release(conn *models.PoolConnection) error {
	if conn == nil {
		return fmt.Errorf("connection is nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.active[conn.ID]; !ok {
		return fmt.Errorf("connection %s does not belong to this pool", conn.ID)
	}
	delete(p.active, conn.ID)

	return nil
}
