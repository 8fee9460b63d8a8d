package slashdoc

import (
	"regexp"
	"sync"

	"github.com/tliron/commonlog"
	"go.dw1.io/fastcache"
)

const (
	DefaultToken      = "///"
	DefaultIndent     = 2
	DefaultStylesheet = "css/style.css"
)

var (
	cacheOnce       sync.Once
	globalCache     *fastcache.Cache[string, cacheEntry]
	cacheFilePath   string
	cachePersistent bool
	cacheMu         sync.Mutex

	// "name {type}:" and "[name] {type}:"
	paramRe         = regexp.MustCompile(`^(?P<name>[\w\-]+)\s+\{(?P<type>[^}]+)\}:`)
	optionalParamRe = regexp.MustCompile(`^\[(?P<name>[\w\-]+)\]\s+\{(?P<type>[^}]+)\}:`)

	// "name (default) {type}:" and "[name] (default) {type}:"
	paramDefaultRe         = regexp.MustCompile(`^(?P<name>[\w\-]+)\s+\((?P<default>(?:\\.|[^)])+)\)\s+\{(?P<type>[^}]+)\}:`)
	optionalParamDefaultRe = regexp.MustCompile(`^\[(?P<name>[\w\-]+)\]\s+\((?P<default>(?:\\.|[^)])+)\)\s+\{(?P<type>[^}]+)\}:`)

	returnRe         = regexp.MustCompile(`^\{(?P<type>[^}]+)\}:`)
	paramsSectionRe  = regexp.MustCompile(`^(params|parameters|props|properties):\s*$`)
	returnsSectionRe = regexp.MustCompile(`^returns:\s*$`)
	headingTypeRe    = regexp.MustCompile(`^.*\{(?P<type>[^}]+)\}`)
	codeSpanRe       = regexp.MustCompile(`\|([^\s|]+)\|`)
)

var logger = commonlog.GetLogger("slashdoc")
