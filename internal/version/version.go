package version

import "fmt"

const AppName = "roomsign"

type Version struct {
	Major int64
	Minor int64
	Patch int64
}

// String returns the version as major.minor.patch
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var AppVersion = Version{
	Major: 1,
	Minor: 0,
	Patch: 0,
}
