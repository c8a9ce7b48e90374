package domain

import (
	"errors"
	"fmt"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

// ErrUnknownDomain 注册表中不存在该领域
var ErrUnknownDomain = errors.New("unknown domain")

// Defaults 内置的建筑/建设领域关键词
var Defaults = []model.Domain{
	{Name: "건축계획", Keywords: []string{"건축", "설계", "건축디자인", "공공건축", "패시브하우스", "제로에너지"}},
	{Name: "도시재생", Keywords: []string{"도시재생", "리모델링", "재건축", "재개발", "노후 건축물", "역세권 개발"}},
	{Name: "건설기술", Keywords: []string{"스마트건설", "BIM", "드론건설", "모듈러", "건설로봇", "3D프린팅 건축"}},
	{Name: "건축정책", Keywords: []string{"건축법", "건축 규제", "건설안전", "에너지 인증제", "녹색건축"}},
	{Name: "친환경건축", Keywords: []string{"친환경건축", "그린빌딩", "ESG 건축", "LEED", "제로에너지건축"}},
}

// DefaultProjects 主要项目列表，供展示层作为附加检索词
var DefaultProjects = []string{
	"세운재정비촉진지구", "광운대 역세권 개발", "송도 국제도시", "용산국제업무지구", "위례 신도시",
}

// Registry 有序的领域注册表
type Registry struct {
	domains []model.Domain
	index   map[string]int
}

// NewRegistry 校验并创建注册表，domains 为空时使用内置领域
func NewRegistry(domains []model.Domain) (*Registry, error) {
	if len(domains) == 0 {
		domains = Defaults
	}

	r := &Registry{
		domains: make([]model.Domain, 0, len(domains)),
		index:   make(map[string]int, len(domains)),
	}
	for _, d := range domains {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.index[d.Name]; ok {
			return nil, fmt.Errorf("duplicate domain %q", d.Name)
		}
		r.index[d.Name] = len(r.domains)
		r.domains = append(r.domains, d)
	}
	return r, nil
}

// Lookup 按名称查找领域
func (r *Registry) Lookup(name string) (model.Domain, bool) {
	i, ok := r.index[name]
	if !ok {
		return model.Domain{}, false
	}
	return r.domains[i], true
}

// Names 按注册顺序返回领域名称
func (r *Registry) Names() []string {
	names := make([]string, len(r.domains))
	for i, d := range r.domains {
		names[i] = d.Name
	}
	return names
}

// All 返回全部领域的副本
func (r *Registry) All() []model.Domain {
	out := make([]model.Domain, len(r.domains))
	copy(out, r.domains)
	return out
}
