package hosting

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// privateStaticPath builds the fiber.Static Next hook. It skips dotfiles and
// the server's own config file, which holds the LLM API key and usually sits
// in the static root.
func privateStaticPath(staticDir, configPath string) func(c *fiber.Ctx) bool {
	root, err := filepath.Abs(staticDir)
	if err != nil {
		root = filepath.Clean(staticDir)
	}
	configFile := ""
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			configFile = abs
		}
	}

	return func(c *fiber.Ctx) bool {
		requested, err := url.PathUnescape(c.Path())
		if err != nil {
			return true
		}
		requested = strings.ReplaceAll(requested, "\\", "/")
		for _, segment := range strings.Split(requested, "/") {
			if strings.HasPrefix(segment, ".") {
				return true
			}
		}
		switch strings.ToLower(path.Base(requested)) {
		case "config.yaml", "config.yml":
			return true
		}
		if configFile != "" && strings.EqualFold(filepath.Join(root, filepath.FromSlash(requested)), configFile) {
			return true
		}
		return false
	}
}
