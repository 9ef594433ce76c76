package model

// EntryType is the kind of system an Entry describes.
type EntryType string

const (
	TypeKernel          EntryType = "Kernel"
	TypeOperatingSystem EntryType = "Operating System"
	TypeRTOS            EntryType = "RTOS"
	TypeMicrokernel     EntryType = "Microkernel"
	TypeMobileOS        EntryType = "Mobile OS"
	TypeDistro          EntryType = "Distro"
)

// Family is the lineage grouping of an Entry.
type Family string

const (
	FamilyEarly    Family = "Early/Pre-Unix"
	FamilyUnix     Family = "Unix"
	FamilyBSD      Family = "BSD"
	FamilySystemV  Family = "System V"
	FamilyLinux    Family = "Linux"
	FamilyWindows  Family = "Windows/MS-DOS"
	FamilyMac      Family = "macOS/OS X/NeXT"
	FamilyAndroid  Family = "Mobile: Android"
	FamilyIOS      Family = "Mobile: iOS/iPadOS"
	FamilyMobile   Family = "Mobile: Other"
	FamilyOther    Family = "Other/Alt"
	FamilyResearch Family = "Research"
)

// Platform is a target hardware class.
type Platform string

const (
	PlatformMainframe    Platform = "Mainframe"
	PlatformMini         Platform = "Mini"
	PlatformWorkstation  Platform = "Workstation"
	PlatformDesktop      Platform = "Desktop"
	PlatformServer       Platform = "Server"
	PlatformEmbedded     Platform = "Embedded"
	PlatformMobile       Platform = "Mobile"
	PlatformTablet       Platform = "Tablet"
	PlatformConsole      Platform = "Console"
	PlatformExperimental Platform = "Experimental"
)

// Types lists every EntryType in display order.
var Types = []EntryType{
	TypeKernel,
	TypeOperatingSystem,
	TypeRTOS,
	TypeMicrokernel,
	TypeMobileOS,
	TypeDistro,
}

// Families lists every Family in display order.
var Families = []Family{
	FamilyEarly,
	FamilyUnix,
	FamilyBSD,
	FamilySystemV,
	FamilyLinux,
	FamilyWindows,
	FamilyMac,
	FamilyAndroid,
	FamilyIOS,
	FamilyMobile,
	FamilyOther,
	FamilyResearch,
}

// Platforms lists every Platform.
var Platforms = []Platform{
	PlatformMainframe,
	PlatformMini,
	PlatformWorkstation,
	PlatformDesktop,
	PlatformServer,
	PlatformEmbedded,
	PlatformMobile,
	PlatformTablet,
	PlatformConsole,
	PlatformExperimental,
}

// Release is a named version of an Entry.
type Release struct {
	Version string `json:"version" yaml:"version"`
	Year    int    `json:"year" yaml:"year"`
	Notes   string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Entry is one operating system, kernel or distro in the timeline.
// Field order matches the exported JSON document.
type Entry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        EntryType  `json:"type"`
	Family      Family     `json:"family"`
	Platform    []Platform `json:"platform"`
	YearStart   int        `json:"yearStart"`
	YearEnd     *int       `json:"yearEnd,omitempty"`
	Description string     `json:"description"`
	Highlights  []string   `json:"highlights,omitempty"`
	Versions    []Release  `json:"versions,omitempty"`
	Related     []string   `json:"related,omitempty"`
}

// LastYear returns YearEnd, or YearStart when the entry has no end year.
func (e Entry) LastYear() int {
	if e.YearEnd != nil {
		return *e.YearEnd
	}
	return e.YearStart
}

// Span formats the active years, e.g. "1991" or "1995–2000".
func (e Entry) Span() string {
	if e.YearEnd == nil {
		return itoa(e.YearStart)
	}
	return itoa(e.YearStart) + "–" + itoa(*e.YearEnd)
}

// IsType reports whether s names a known EntryType (exact match).
func IsType(s string) bool {
	for _, t := range Types {
		if string(t) == s {
			return true
		}
	}
	return false
}

// IsFamily reports whether s names a known Family (exact match).
func IsFamily(s string) bool {
	for _, f := range Families {
		if string(f) == s {
			return true
		}
	}
	return false
}

// IsPlatform reports whether s names a known Platform (exact match).
func IsPlatform(s string) bool {
	for _, p := range Platforms {
		if string(p) == s {
			return true
		}
	}
	return false
}

// IntPtr returns a pointer to v. Handy for building entries in code.
func IntPtr(v int) *int {
	return &v
}
