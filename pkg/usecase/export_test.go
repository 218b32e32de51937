package usecase

// Export for testing
var (
	ExpandStrict    = expandStrict
	ExpandStrictAll = expandStrictAll
)

// ConfigService exports for testing
type ConfigService = configService

// Export configService methods for testing
func (c *configService) FindConfigInDirectory(dir string) string {
	return c.findConfigInDirectory(dir)
}
