package conf

import "time"

// Respd configuration center
type Respd struct {
	Server      Server `cfg:"server"`
	Status      Status `cfg:"status"`
	Logger      Logger `cfg:"logger"`
	PIDFileName string `cfg:"pid-filename; respd.pid; ; the file name to record connd PID"`
}

// Server config is the config of respd server
type Server struct {
	Listen        string        `cfg:"listen; 0.0.0.0:6379; netaddr; address to listen"`
	MaxConnection int           `cfg:"max-connection;1000;numeric;client connection count, 0 for no limit"`
	IdleTimeout   time.Duration `cfg:"idle-timeout;5m;;close a client which sends nothing for this long, 0 for never"`
	CommandRate   int           `cfg:"command-rate;0;numeric;commands per second per client, 0 for no limit"`
	// The minimal server dispatches every element of a request as its own command
	ElementDispatch bool    `cfg:"element-dispatch;false;boolean;dispatch each array element as a command"`
	TLSCertFile     string  `cfg:"tls-cert-file;;;certificate file to enable TLS"`
	TLSKeyFile      string  `cfg:"tls-key-file;;;private key file to enable TLS"`
	Decoder         Decoder `cfg:"decoder"`
}

// Decoder config limits what a client may send
type Decoder struct {
	MaxDepth       int   `cfg:"max-depth;128;numeric;max nesting of arrays, 0 for no limit"`
	MaxBulkLength  int64 `cfg:"max-bulk-length;536870912;numeric;max bytes of a bulk string, 0 for no limit"`
	MaxArrayLength int64 `cfg:"max-array-length;1048576;numeric;max elements of an array, 0 for no limit"`
	MaxLineLength  int   `cfg:"max-line-length;0;numeric;max bytes of a simple string line, 0 for no limit"`
	Lenient        bool  `cfg:"lenient;false;boolean;do not check the terminator after a bulk string"`
}

// Logger config is the config of default zap log
type Logger struct {
	Name       string `cfg:"name; respd; ; the default logger name"`
	Path       string `cfg:"path; logs/respd; ; the default log path, stdout and stderr are accepted"`
	Level      string `cfg:"level; info; ; log level(debug, info, warn, error, panic, fatal)"`
	Compress   bool   `cfg:"compress; false; boolean; true for enabling log compress"`
	TimeRotate string `cfg:"time-rotate; 0 0 0 * * *; ; log time rotate pattern(s m h D M W)"`
}

// Status config is the config of exported server
type Status struct {
	Listen string `cfg:"listen;0.0.0.0:7345;nonempty; listen address of http server"`
}
