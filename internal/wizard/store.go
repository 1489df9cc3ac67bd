package wizard

import "github.com/yildizm/tcgen/internal/common"

// Store holds the artifacts produced by each step
type Store struct {
	files     common.UploadedFiles
	analysis  *common.AnalysisResult
	config    *common.TestConfig
	testCases []common.TestCase
}

// Files returns the uploaded file handles
func (s *Store) Files() common.UploadedFiles { return s.files }

// Analysis returns the analysis result, nil until produced
func (s *Store) Analysis() *common.AnalysisResult { return s.analysis }

// Config returns the submitted configuration, nil until submitted
func (s *Store) Config() *common.TestConfig {
	if s.config == nil {
		return nil
	}
	cfg := *s.config
	cfg.QueryTypes = append([]string(nil), s.config.QueryTypes...)
	return &cfg
}

// TestCases returns the generated test cases
func (s *Store) TestCases() []common.TestCase { return s.testCases }

// TestCase looks up a generated test case by id
func (s *Store) TestCase(id string) (common.TestCase, bool) {
	for _, tc := range s.testCases {
		if tc.ID == id {
			return tc, true
		}
	}
	return common.TestCase{}, false
}

func (s *Store) setFiles(files common.UploadedFiles) { s.files = files }

func (s *Store) setAnalysis(result *common.AnalysisResult) { s.analysis = result }

func (s *Store) setConfig(cfg common.TestConfig) {
	cfg.QueryTypes = append([]string(nil), cfg.QueryTypes...)
	s.config = &cfg
}

func (s *Store) clearConfig() { s.config = nil }

func (s *Store) setTestCases(cases []common.TestCase) {
	s.testCases = append([]common.TestCase(nil), cases...)
}

func (s *Store) reset() {
	*s = Store{}
}
