package schedule

import (
	"encoding/csv"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var columns = []string{"room", "day", "start_time", "end_time", "class", "title", "teacher"}

var ErrMissingColumn = errors.New("missing column")

type Repository struct {
	fs       afero.Fs
	filename string
}

func NewRepository(fs afero.Fs, filename string) *Repository {
	return &Repository{fs: fs, filename: filename}
}

// Load reads the schedule file again and keeps the rows of roomId, in file order.
// A missing or malformed file gives an empty schedule.
func (r *Repository) Load(roomId string) []Slot {
	slots, err := r.readAll()
	if err != nil {
		logrus.Warnf("Unable to read schedule %s: %v", r.filename, err)
		return []Slot{}
	}

	return lo.Filter(slots, func(slot Slot, _ int) bool {
		return slot.Room == roomId
	})
}

func (r *Repository) readAll() ([]Slot, error) {
	file, err := r.fs.Open(r.filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var slots []Slot
	if err = gocsv.UnmarshalCSV(rowReader{Reader: reader, filename: r.filename}, &slots); err != nil {
		return nil, err
	}

	logrus.Debugf("Read %d schedule rows from %s", len(slots), r.filename)
	return slots, nil
}

// rowReader checks the header columns and leaves out the rows whose field count
// doesn't match the header
type rowReader struct {
	*csv.Reader
	filename string
}

func (r rowReader) ReadAll() ([][]string, error) {
	records, err := r.Reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read rows")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrMissingColumn, "empty file")
	}

	header := records[0]
	for _, name := range columns {
		if !lo.Contains(header, name) {
			return nil, errors.Wrap(ErrMissingColumn, name)
		}
	}

	rows := lo.Filter(records[1:], func(record []string, i int) bool {
		if len(record) != len(header) {
			logrus.Warnf("Skip row %d of %s: %d fields instead of %d", i+2, r.filename, len(record), len(header))
			return false
		}
		return true
	})
	return append([][]string{header}, rows...), nil
}
