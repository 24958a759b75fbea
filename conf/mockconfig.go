package conf

import "time"

// MockConf init and return respd mock conf
func MockConf() *Respd {
	return &Respd{
		Server: Server{
			Listen:        "127.0.0.1:0",
			MaxConnection: 16,
			IdleTimeout:   5 * time.Second,
			Decoder: Decoder{
				MaxDepth:       128,
				MaxBulkLength:  1024 * 1024,
				MaxArrayLength: 1024,
			},
		},
		Status: Status{
			Listen: "127.0.0.1:0",
		},
		Logger: Logger{
			Name:  "respd",
			Path:  "stdout",
			Level: "debug",
		},
		PIDFileName: "respd.pid",
	}
}
