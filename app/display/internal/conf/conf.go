package conf

type Bootstrap struct {
	Server *Server
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Radar 检索流水线配置，内容沿用 arch_radar 的 YAML 配置文件
type Radar struct {
	ConfigPath string `json:"config_path"`
	// MaxResults 单次检索允许的最大条数
	MaxResults int32 `json:"max_results"`
}
