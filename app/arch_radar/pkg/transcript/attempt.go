package transcript

// Status 单个阶段的明确结果
type Status int

const (
	StatusFound       Status = iota
	StatusDisabled           // 视频关闭了字幕
	StatusNotFound           // 没有符合语言偏好的字幕，或字幕为空
	StatusUnavailable        // 网络、鉴权、视频不可播放等其他失败
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusDisabled:
		return "disabled"
	case StatusNotFound:
		return "not-found"
	default:
		return "unavailable"
	}
}

// Attempt 一次字幕获取尝试的结果
type Attempt struct {
	Status   Status
	Text     string
	Language string
	Err      error
}

// Found 成功结果
func Found(text, language string) Attempt {
	return Attempt{Status: StatusFound, Text: text, Language: language}
}

// Failed 失败结果
func Failed(status Status, err error) Attempt {
	return Attempt{Status: status, Err: err}
}
