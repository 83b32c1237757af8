package cli

import "cfr/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	Prefix     string
	Workers    int
	StateDir   string
	RepoPath   string
	LogLevel   string
	NoProgress bool
	NameFilter string
	FailedOnly bool
	Format     string
	Output     string
	TestName   string
	Preview    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		Prefix:     f.Prefix,
		Workers:    f.Workers,
		StateDir:   f.StateDir,
		RepoPath:   f.RepoPath,
		LogLevel:   f.LogLevel,
		NoProgress: f.NoProgress,
		NameFilter: f.NameFilter,
		FailedOnly: f.FailedOnly,
		Format:     f.Format,
		Output:     f.Output,
		TestName:   f.TestName,
		Preview:    f.Preview,
	}
}
