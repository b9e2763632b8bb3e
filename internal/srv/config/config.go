package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"
)

const paramFilename = "param.yaml"

type ServerConfig struct {
	ConfigDir      string
	DebugMode      bool
	SimulationMode bool
	Fs             afero.Fs

	*ServerParam
	location *time.Location
}

// NewServerConfig loads the config folder and aborts the process when it is unusable
func NewServerConfig(fs afero.Fs, configDir string, debugMode bool, simulationMode bool) *ServerConfig {
	serverConfig, err := LoadServerConfig(fs, configDir, debugMode, simulationMode)
	if err != nil {
		logrus.Fatalf("Unable to load configuration: %v\n", err)
	}
	return serverConfig
}

func LoadServerConfig(fs afero.Fs, configDir string, debugMode bool, simulationMode bool) (*ServerConfig, error) {
	serverConfig := &ServerConfig{
		ConfigDir:      configDir,
		DebugMode:      debugMode,
		SimulationMode: simulationMode,
		Fs:             fs,
		ServerParam:    &ServerParam{},
	}

	// Check Configuration folder
	exists, err := afero.DirExists(fs, configDir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to access config folder %s", configDir)
	}
	if !exists {
		logrus.Printf("Creation of config folder: %s", configDir)
		if err = fs.MkdirAll(configDir, 0770); err != nil {
			return nil, errors.Wrap(err, "unable to create config folder")
		}
	}

	// Defaults first, param file values override them
	if err = yaml.Unmarshal(ParamDefaultFile, serverConfig.ServerParam); err != nil {
		return nil, errors.Wrap(err, "unable to interpret default param file")
	}

	rawConfig, err := afero.ReadFile(fs, serverConfig.GetCompleteParamFilename())
	if err == nil {
		if err = yaml.Unmarshal(rawConfig, serverConfig.ServerParam); err != nil {
			return nil, errors.Wrap(err, "unable to interpret param file")
		}
	} else if os.IsNotExist(err) {
		logrus.Infof("Create default param file")
		if err = serverConfig.SaveParam(); err != nil {
			return nil, err
		}
	} else {
		return nil, errors.Wrap(err, "unable to read param file")
	}

	serverConfig.location, err = time.LoadLocation(serverConfig.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %q", serverConfig.Timezone)
	}

	return serverConfig, nil
}

func (sc *ServerConfig) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(sc.ConfigDir, filename)
}

func (sc *ServerConfig) GetCompleteParamFilename() string {
	return filepath.Join(sc.ConfigDir, paramFilename)
}

func (sc *ServerConfig) GetCompleteRoomFilename() string {
	return sc.resolve(sc.RoomFile)
}

func (sc *ServerConfig) GetCompleteScheduleFilename() string {
	return sc.resolve(sc.ScheduleFile)
}

func (sc *ServerConfig) GetCompleteEventFolder() string {
	return sc.resolve(sc.EventFolder)
}

func (sc *ServerConfig) GetCompleteFontFilename() string {
	return sc.resolve(sc.FontFile)
}

func (sc *ServerConfig) GetCompleteSimulationFolder() string {
	return sc.resolve(sc.SimulationFolder)
}

func (sc *ServerConfig) Location() *time.Location {
	return sc.location
}

func (sc *ServerConfig) SaveParam() error {
	logrus.Debugf("Save param file: %s", sc.GetCompleteParamFilename())
	rawConfig, err := yaml.Marshal(sc.ServerParam)
	if err != nil {
		return errors.Wrap(err, "unable to serialize param file")
	}
	if err = afero.WriteFile(sc.Fs, sc.GetCompleteParamFilename(), rawConfig, 0660); err != nil {
		return errors.Wrap(err, "unable to save param file")
	}
	return nil
}
