package lobe

// ManifestSchemaVersion manifest 版本
const ManifestSchemaVersion = "1"

// Manifest LobeChat 插件描述文件
type Manifest struct {
	Identifier string  `json:"identifier"`
	Version    string  `json:"version"`
	Type       string  `json:"type,omitempty"`
	API        []API   `json:"api"`
	Meta       Meta    `json:"meta"`
	Settings   *Schema `json:"settings,omitempty"`
	SystemRole string  `json:"systemRole,omitempty"`
}

// API 插件暴露的函数
type API struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Parameters  *Schema `json:"parameters"`
}

// Meta 插件展示信息
type Meta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Avatar      string   `json:"avatar,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Schema JSON Schema 子集，用于描述参数和设置项
type Schema struct {
	Type        string             `json:"type"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Format      string             `json:"format,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Default     any                `json:"default,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Object 创建 object 类型 schema
func Object(required []string, properties map[string]*Schema) *Schema {
	return &Schema{Type: "object", Properties: properties, Required: required}
}

// Bounds 设置数值范围
func (s *Schema) Bounds(lo, hi float64) *Schema {
	s.Minimum = &lo
	s.Maximum = &hi
	return s
}
