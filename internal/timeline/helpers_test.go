package timeline

import "ostimeline/internal/model"

var testBounds = Bounds{Min: 1965, Max: 2024}

// sampleEntries returns a small dataset in declaration order. Tests should
// modify only the fields they care about.
func sampleEntries() []model.Entry {
	return []model.Entry{
		{
			ID: "linux", Name: "Linux Kernel", Type: model.TypeKernel, Family: model.FamilyLinux,
			Platform: []model.Platform{model.PlatformServer}, YearStart: 1991,
			Description: "Monolithic kernel by Linus Torvalds.",
			Versions:    []model.Release{{Version: "2.6", Year: 2003, Notes: "O(1) scheduler"}},
		},
		{
			ID: "solaris", Name: "Solaris", Type: model.TypeOperatingSystem, Family: model.FamilySystemV,
			Platform: []model.Platform{model.PlatformServer}, YearStart: 1992, YearEnd: model.IntPtr(2018),
			Description: "Sun's Unix.", Highlights: []string{"ZFS", "DTrace"},
		},
		{
			ID: "multics", Name: "Multics", Type: model.TypeOperatingSystem, Family: model.FamilyEarly,
			Platform: []model.Platform{model.PlatformMainframe}, YearStart: 1965, YearEnd: model.IntPtr(2000),
			Description: "Time-sharing pioneer.",
		},
		{
			ID: "win2000", Name: "Windows 2000", Type: model.TypeOperatingSystem, Family: model.FamilyWindows,
			Platform: []model.Platform{model.PlatformDesktop}, YearStart: 2000,
			Description: "NT 5.0.", Related: []string{"nt"},
		},
		{
			ID: "minix", Name: "MINIX", Type: model.TypeMicrokernel, Family: model.FamilyResearch,
			Platform: []model.Platform{model.PlatformDesktop}, YearStart: 1991,
			Description: "Teaching OS.",
		},
	}
}

func ids(list []model.Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}
