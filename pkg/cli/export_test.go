package cli

// Export for testing
const PipelineTemplate = pipelineTemplate

var TruncateName = truncateName
