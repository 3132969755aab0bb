package timeutil

import (
	"sort"
	"strings"
	"time"
)

// ZoneCatalog lists known timezones grouped by region (the segment before
// the first slash, or "Other" for bare names like UTC).
type ZoneCatalog struct {
	Regions           []string               `json:"regions"`
	TimezonesByRegion map[string][]ZoneEntry `json:"timezones_by_region"`
	TotalCount        int                    `json:"total_count"`
}

// ZoneEntry describes one timezone at the moment the catalog was built.
type ZoneEntry struct {
	Name           string  `json:"name"`
	UTCOffset      string  `json:"utc_offset"`
	UTCOffsetHours float64 `json:"utc_offset_hours"`
	CurrentTime    string  `json:"current_time"`
}

// commonZoneNames is a curated selection of IANA zone names, kept in
// lexicographic order so each region's entries come out sorted.
var commonZoneNames = []string{
	"Africa/Accra",
	"Africa/Addis_Ababa",
	"Africa/Algiers",
	"Africa/Cairo",
	"Africa/Casablanca",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"Africa/Nairobi",
	"Africa/Tunis",
	"America/Anchorage",
	"America/Argentina/Buenos_Aires",
	"America/Bogota",
	"America/Caracas",
	"America/Chicago",
	"America/Denver",
	"America/Guatemala",
	"America/Halifax",
	"America/Havana",
	"America/Lima",
	"America/Los_Angeles",
	"America/Mexico_City",
	"America/Montevideo",
	"America/New_York",
	"America/Phoenix",
	"America/Santiago",
	"America/Sao_Paulo",
	"America/St_Johns",
	"America/Toronto",
	"America/Vancouver",
	"Antarctica/McMurdo",
	"Antarctica/Palmer",
	"Asia/Baghdad",
	"Asia/Bangkok",
	"Asia/Dhaka",
	"Asia/Dubai",
	"Asia/Ho_Chi_Minh",
	"Asia/Hong_Kong",
	"Asia/Jakarta",
	"Asia/Jerusalem",
	"Asia/Karachi",
	"Asia/Kathmandu",
	"Asia/Kolkata",
	"Asia/Kuala_Lumpur",
	"Asia/Manila",
	"Asia/Riyadh",
	"Asia/Seoul",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Taipei",
	"Asia/Tehran",
	"Asia/Tokyo",
	"Atlantic/Azores",
	"Atlantic/Bermuda",
	"Atlantic/Canary",
	"Atlantic/Cape_Verde",
	"Atlantic/Reykjavik",
	"Australia/Adelaide",
	"Australia/Brisbane",
	"Australia/Darwin",
	"Australia/Hobart",
	"Australia/Melbourne",
	"Australia/Perth",
	"Australia/Sydney",
	"Europe/Amsterdam",
	"Europe/Athens",
	"Europe/Berlin",
	"Europe/Brussels",
	"Europe/Bucharest",
	"Europe/Budapest",
	"Europe/Copenhagen",
	"Europe/Dublin",
	"Europe/Helsinki",
	"Europe/Istanbul",
	"Europe/Lisbon",
	"Europe/London",
	"Europe/Madrid",
	"Europe/Moscow",
	"Europe/Oslo",
	"Europe/Paris",
	"Europe/Prague",
	"Europe/Rome",
	"Europe/Stockholm",
	"Europe/Vienna",
	"Europe/Warsaw",
	"Europe/Zurich",
	"Indian/Maldives",
	"Indian/Mauritius",
	"Indian/Reunion",
	"Pacific/Auckland",
	"Pacific/Chatham",
	"Pacific/Fiji",
	"Pacific/Galapagos",
	"Pacific/Guam",
	"Pacific/Honolulu",
	"Pacific/Port_Moresby",
	"Pacific/Tahiti",
	"Pacific/Tongatapu",
	"UTC",
}

// ListCommonTimezones builds the timezone catalog with each zone's current
// offset and local clock time. Zones the host cannot resolve are omitted;
// TotalCount reflects the entries actually listed.
func ListCommonTimezones() *ZoneCatalog {
	return listCommonTimezonesAt(time.Now())
}

func listCommonTimezonesAt(now time.Time) *ZoneCatalog {
	byRegion := make(map[string][]ZoneEntry)
	total := 0
	for _, name := range commonZoneNames {
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		local := now.In(loc)
		_, offset := local.Zone()

		region := "Other"
		if i := strings.Index(name, "/"); i >= 0 {
			region = name[:i]
		}
		byRegion[region] = append(byRegion[region], ZoneEntry{
			Name:           name,
			UTCOffset:      local.Format("-0700"),
			UTCOffsetHours: float64(offset) / 3600,
			CurrentTime:    local.Format("15:04:05"),
		})
		total++
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	return &ZoneCatalog{
		Regions:           regions,
		TimezonesByRegion: byRegion,
		TotalCount:        total,
	}
}
