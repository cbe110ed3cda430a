// Package config provides configuration loading and management.
package config

// Config represents the modpack configuration.
// Loaded from .modpack.yaml, every unset field is filled by WithDefaults.
type Config struct {
	// ProjectRoot is the monorepo root. Relative values are resolved against
	// the directory containing the config file.
	// Env: MODPACK_ROOT
	ProjectRoot string `mapstructure:"projectRoot" yaml:"projectRoot,omitempty"`

	Backend        BackendConfig        `mapstructure:"backend" yaml:"backend"`
	Frontend       FrontendConfig       `mapstructure:"frontend" yaml:"frontend"`
	Infrastructure InfrastructureConfig `mapstructure:"infrastructure" yaml:"infrastructure"`
	DBMigration    DBMigrationConfig    `mapstructure:"dbmigration" yaml:"dbmigration"`
	Output         OutputConfig         `mapstructure:"output" yaml:"output"`
	Packer         PackerConfig         `mapstructure:"packer" yaml:"packer"`
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
}

// BackendConfig locates the backend bounded contexts.
type BackendConfig struct {
	// SourceRoot contains one directory per bounded context.
	SourceRoot string `mapstructure:"sourceRoot" yaml:"sourceRoot"`

	// ResourcesRoot holds application*.yml and the migration changelogs.
	ResourcesRoot string `mapstructure:"resourcesRoot" yaml:"resourcesRoot"`

	// MetadataFile is the per-module file carrying the module annotation.
	MetadataFile string `mapstructure:"metadataFile" yaml:"metadataFile"`

	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// FrontendModuleConfig is the display metadata for one frontend module.
type FrontendModuleConfig struct {
	DisplayName string `mapstructure:"displayName" yaml:"displayName"`
	Description string `mapstructure:"description" yaml:"description"`
}

// FrontendConfig locates the frontend application.
type FrontendConfig struct {
	// ProjectDir holds package.json and the bundler configs.
	ProjectDir string `mapstructure:"projectDir" yaml:"projectDir"`

	// SourceRoot contains modules/, shared/, App.tsx and main.tsx.
	SourceRoot string `mapstructure:"sourceRoot" yaml:"sourceRoot"`

	// Modules maps a module directory name to its display metadata.
	Modules map[string]FrontendModuleConfig `mapstructure:"modules" yaml:"modules"`

	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// ServiceMapping maps a compose service to an infrastructure module.
type ServiceMapping struct {
	// DisplayName groups services into one module. Defaults to the service
	// name up to the first hyphen.
	DisplayName string `mapstructure:"displayName" yaml:"displayName,omitempty"`

	// Folders are directories below the infrastructure root.
	Folders []string `mapstructure:"folders" yaml:"folders,omitempty"`

	// Patterns are globs applied inside every folder. Default "**/*".
	Patterns []string `mapstructure:"patterns" yaml:"patterns,omitempty"`

	// Skip drops the service from discovery.
	Skip bool `mapstructure:"skip" yaml:"skip,omitempty"`
}

// InfrastructureConfig locates the service orchestration setup.
type InfrastructureConfig struct {
	Root string `mapstructure:"root" yaml:"root"`

	// Manifest is the compose file name relative to Root.
	Manifest string `mapstructure:"manifest" yaml:"manifest"`

	Services map[string]ServiceMapping `mapstructure:"services" yaml:"services"`

	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// DBMigrationConfig locates the database changelogs.
type DBMigrationConfig struct {
	// ChangelogDir is relative to the backend resources root.
	ChangelogDir string `mapstructure:"changelogDir" yaml:"changelogDir"`

	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// OutputConfig controls the packed output files.
type OutputConfig struct {
	// Dir receives <category>/<name>-packed.txt files.
	// Env: MODPACK_OUTPUT_DIR
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Style is the packer output style: xml, markdown, plain or json.
	Style string `mapstructure:"style" yaml:"style"`

	RemoveComments   *bool `mapstructure:"removeComments" yaml:"removeComments"`
	RemoveEmptyLines *bool `mapstructure:"removeEmptyLines" yaml:"removeEmptyLines"`
	TopFilesLength   *int  `mapstructure:"topFilesLength" yaml:"topFilesLength"`
	ShowLineNumbers  bool  `mapstructure:"showLineNumbers" yaml:"showLineNumbers"`
	CopyToClipboard  bool  `mapstructure:"copyToClipboard" yaml:"copyToClipboard"`
}

// PackerConfig describes the external packer executable.
type PackerConfig struct {
	// Command is the executable name or path.
	// Env: MODPACK_PACKER_COMMAND
	Command string `mapstructure:"command" yaml:"command"`

	// Args are passed before "--config <file>".
	Args []string `mapstructure:"args" yaml:"args,omitempty"`

	// MaxOutputBytes caps the captured packer output.
	MaxOutputBytes int64 `mapstructure:"maxOutputBytes" yaml:"maxOutputBytes"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Default values.
const (
	DefaultBackendSourceRoot    = "rental-backend/src/main/java/de/cenglisch/rentalbackend"
	DefaultBackendResourcesRoot = "rental-backend/src/main/resources"
	DefaultMetadataFile         = "package-info.java"
	DefaultFrontendProjectDir   = "rental-frontend"
	DefaultFrontendSourceRoot   = "rental-frontend/src"
	DefaultInfrastructureRoot   = "rental-infrastructure"
	DefaultManifest             = "docker-compose.yaml"
	DefaultChangelogDir         = "db/changelog"
	DefaultOutputDir            = ".repomix/outputs"
	DefaultOutputStyle          = "xml"
	DefaultTopFilesLength       = 3
	DefaultPackerCommand        = "repomix"
	DefaultMaxOutputBytes       = 10 * 1024 * 1024
)

// DefaultBackendIgnore is the default ignore list for backend packs.
func DefaultBackendIgnore() []string {
	return []string{
		"**/target/**",
		"**/.idea/**",
		"**/*.iml",
		"**/.git/**",
		"**/*.class",
		"**/test/**",
		"**/package-info.java",
	}
}

// DefaultFrontendIgnore is the default ignore list for frontend packs.
func DefaultFrontendIgnore() []string {
	return []string{
		"**/node_modules/**",
		"**/dist/**",
		"**/.git/**",
		"**/build/**",
		"**/*.css",
	}
}

// DefaultInfrastructureIgnore is the default ignore list for infrastructure packs.
func DefaultInfrastructureIgnore() []string {
	return []string{
		"**/.git/**",
		"**/data/**",
		"**/volumes/**",
		"**/*.log",
	}
}

// DefaultDBMigrationIgnore is the default ignore list for the migration pack.
func DefaultDBMigrationIgnore() []string {
	return []string{
		"**/.git/**",
		"**/target/**",
	}
}

// DefaultFrontendModules returns the built-in frontend display metadata.
func DefaultFrontendModules() map[string]FrontendModuleConfig {
	return map[string]FrontendModuleConfig{
		"employee": {DisplayName: "Employee", Description: "Employee dashboard, vehicle management, bookings"},
		"customer": {DisplayName: "Customer", Description: "Customer portal, booking wizard, profile"},
	}
}

// DefaultServiceMappings returns the built-in compose service mapping table.
func DefaultServiceMappings() map[string]ServiceMapping {
	return map[string]ServiceMapping{
		"postgres": {
			Folders:  []string{"postgres"},
			Patterns: []string{"**/*.sql", "**/*.sh"},
		},
		"authentik-server": {
			DisplayName: "authentik",
			Folders:     []string{"authentik"},
			Patterns:    []string{"**/*.yaml", "**/*.yml", "**/*.env*"},
		},
		"authentik-worker": {Skip: true},
		"redis":            {},
		"mailpit":          {},
	}
}

// DefaultConfig returns a Config with all default values populated.
// Used by `modpack config init` to generate an initial config file.
func DefaultConfig() *Config {
	return (&Config{}).WithDefaults()
}

// WithDefaults returns a copy of c with every unset field set to its default.
func (c *Config) WithDefaults() *Config {
	out := *c

	if out.Backend.SourceRoot == "" {
		out.Backend.SourceRoot = DefaultBackendSourceRoot
	}
	if out.Backend.ResourcesRoot == "" {
		out.Backend.ResourcesRoot = DefaultBackendResourcesRoot
	}
	if out.Backend.MetadataFile == "" {
		out.Backend.MetadataFile = DefaultMetadataFile
	}
	if len(out.Backend.Ignore) == 0 {
		out.Backend.Ignore = DefaultBackendIgnore()
	}

	if out.Frontend.ProjectDir == "" {
		out.Frontend.ProjectDir = DefaultFrontendProjectDir
	}
	if out.Frontend.SourceRoot == "" {
		out.Frontend.SourceRoot = DefaultFrontendSourceRoot
	}
	if len(out.Frontend.Modules) == 0 {
		out.Frontend.Modules = DefaultFrontendModules()
	}
	if len(out.Frontend.Ignore) == 0 {
		out.Frontend.Ignore = DefaultFrontendIgnore()
	}

	if out.Infrastructure.Root == "" {
		out.Infrastructure.Root = DefaultInfrastructureRoot
	}
	if out.Infrastructure.Manifest == "" {
		out.Infrastructure.Manifest = DefaultManifest
	}
	if out.Infrastructure.Services == nil {
		out.Infrastructure.Services = DefaultServiceMappings()
	}
	if len(out.Infrastructure.Ignore) == 0 {
		out.Infrastructure.Ignore = DefaultInfrastructureIgnore()
	}

	if out.DBMigration.ChangelogDir == "" {
		out.DBMigration.ChangelogDir = DefaultChangelogDir
	}
	if len(out.DBMigration.Ignore) == 0 {
		out.DBMigration.Ignore = DefaultDBMigrationIgnore()
	}

	if out.Output.Dir == "" {
		out.Output.Dir = DefaultOutputDir
	}
	if out.Output.Style == "" {
		out.Output.Style = DefaultOutputStyle
	}
	if out.Output.RemoveComments == nil {
		out.Output.RemoveComments = boolPtr(true)
	}
	if out.Output.RemoveEmptyLines == nil {
		out.Output.RemoveEmptyLines = boolPtr(true)
	}
	if out.Output.TopFilesLength == nil {
		n := DefaultTopFilesLength
		out.Output.TopFilesLength = &n
	}

	if out.Packer.Command == "" {
		out.Packer.Command = DefaultPackerCommand
	}
	if out.Packer.MaxOutputBytes == 0 {
		out.Packer.MaxOutputBytes = DefaultMaxOutputBytes
	}

	return &out
}

// InfrastructureManifestPath returns the compose manifest path relative to the project root.
func (c *Config) InfrastructureManifestPath() string {
	return joinSlash(c.Infrastructure.Root, c.Infrastructure.Manifest)
}

// ChangelogPath returns the migration changelog directory relative to the project root.
func (c *Config) ChangelogPath() string {
	return joinSlash(c.Backend.ResourcesRoot, c.DBMigration.ChangelogDir)
}

func boolPtr(b bool) *bool {
	return &b
}

// GlobalFlags holds the raw values of the persistent root flags.
type GlobalFlags struct {
	Config     string
	Root       string
	Verbose    bool
	Timestamps bool
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with defaults applied.
	Config *Config

	// ConfigPath is the config file in use, empty when none was found.
	ConfigPath string

	// ProjectRoot is the absolute monorepo root.
	ProjectRoot string

	// Resolved records where ConfigPath and ProjectRoot came from.
	Resolved []ResolvedValue

	Flags GlobalFlags
}
