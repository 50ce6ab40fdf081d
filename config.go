package streambuf

import (
	"bufio"
	"os"
	"path"
	"regexp"

	"github.com/pkg/errors"
)

// rootPath stores path to the streambuf root, STREAMBUF_DIR or /
var rootPath string

// confPath stores path to streambuf.conf
var confPath string

// config stores the configuration read from streambuf.conf, nil when there
// is no readable config
var config map[string]string

// pat stores a valid key-value pattern line
var pat = regexp.MustCompile("^([A-Z0-9_]+)=(.*)$")

// initConfig initializes the config constants
func initConfig() error {
	config = nil

	root, ok := os.LookupEnv("STREAMBUF_DIR")
	if !ok {
		root = "/"
	}
	rootPath = root

	conf, ok := os.LookupEnv("STREAMBUF_CONF")
	if !ok {
		conf = path.Join(rootPath, "etc", "streambuf.conf")
	}
	confPath = conf

	f, err := os.Open(confPath)
	if err != nil {
		return errors.Wrap(err, "opening config")
	}
	defer f.Close()

	// if we reach at this point, it means we have a valid config
	// that can be read, so we can make the map non-nil
	config = make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if matches := pat.FindStringSubmatch(scanner.Text()); matches != nil {
			config[matches[1]] = matches[2]
		}
	}

	return errors.Wrap(scanner.Err(), "reading config")
}

// ConfigValue returns the value of key in streambuf.conf
func ConfigValue(key string) (string, bool) {
	v, ok := config[key]
	return v, ok
}

// tmpDir is the directory stream files are mapped under
func tmpDir() string {
	if tdir, present := config["STREAMBUF_TMP_DIR"]; present {
		return path.Join(rootPath, tdir)
	}
	return os.TempDir()
}
