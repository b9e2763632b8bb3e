package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"strings"
)

// LoadRoomId reads the room identifier. The second result is false when the file
// can't be read or holds nothing but whitespace.
func LoadRoomId(fs afero.Fs, filename string) (string, bool) {
	raw, err := afero.ReadFile(fs, filename)
	if err != nil {
		logrus.Errorf("Unable to read room file %s: %v", filename, err)
		return "", false
	}

	roomId := strings.TrimSpace(string(raw))
	if roomId == "" {
		logrus.Errorf("Room file %s is empty", filename)
		return "", false
	}

	logrus.Infof("Loaded room id: %s", roomId)
	return roomId, true
}
