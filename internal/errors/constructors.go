package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build pipeline errors

func BuildFailed(stage string, cause error) *SiteError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func DiscoveryError(cause error) *SiteError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "content discovery failed")
}

func RenderError(file string, cause error) *SiteError {
	return Wrap(cause, CategoryRender, SeverityFatal, "failed to render "+file).
		WithContext("file", file)
}

func NavError(cause error) *SiteError {
	return Wrap(cause, CategoryContent, SeverityFatal, "navigation resolution failed")
}

// Serve mode errors

func ServeError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryServe, SeverityFatal, message)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
