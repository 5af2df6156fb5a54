package scene

// Project is a scene graph as delivered by the data source: an ordered list of
// scenes plus an optional voice track for the whole composition.
type Project struct {
	Scenes   []RawScene `json:"scenes" yaml:"scenes"`
	VoiceURL string     `json:"voiceUrl,omitempty" yaml:"voiceUrl,omitempty"`
}

// RawScene is a scene record in either of the two legacy shapes. Assets are
// read from "assets" when that key is present, else from "sceneAssets".
type RawScene struct {
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Narration    string       `json:"narration,omitempty" yaml:"narration,omitempty"`
	StartTime    *float64     `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime      *float64     `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Duration     *float64     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Assets       []RawAsset   `json:"assets,omitempty" yaml:"assets,omitempty"`
	SceneAssets  []RawAsset   `json:"sceneAssets,omitempty" yaml:"sceneAssets,omitempty"`
	TextOverlays []RawOverlay `json:"textOverlays,omitempty" yaml:"textOverlays,omitempty"`
}

// RawAsset is an asset placement. Media fields may sit on the record itself or
// under the nested "asset" record; the nested value wins when it is non-empty.
type RawAsset struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	OriginalURL string      `json:"originalUrl,omitempty" yaml:"originalUrl,omitempty"`
	StoredURL   string      `json:"storedUrl,omitempty" yaml:"storedUrl,omitempty"`
	Order       *float64    `json:"order,omitempty" yaml:"order,omitempty"`
	StartTime   *float64    `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	Duration    *float64    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Asset       *RawMedia   `json:"asset,omitempty" yaml:"asset,omitempty"`
	Effects     []RawEffect `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// RawMedia is the nested media record of a RawAsset.
type RawMedia struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	OriginalURL string `json:"originalUrl,omitempty" yaml:"originalUrl,omitempty"`
	StoredURL   string `json:"storedUrl,omitempty" yaml:"storedUrl,omitempty"`
}

// RawEffect is a camera effect. StartTime is scene-relative.
// The kind is read from "fx", then "kind", then "type".
type RawEffect struct {
	FX        string   `json:"fx,omitempty" yaml:"fx,omitempty"`
	Kind      string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty"`
	StartTime *float64 `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	Duration  *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// RawOverlay is a text overlay record.
type RawOverlay struct {
	ID              string          `json:"id,omitempty" yaml:"id,omitempty"`
	Text            string          `json:"text,omitempty" yaml:"text,omitempty"`
	StartTime       *float64        `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	Duration        *float64        `json:"duration,omitempty" yaml:"duration,omitempty"`
	Effect          string          `json:"effect,omitempty" yaml:"effect,omitempty"`
	TransitionDelay *float64        `json:"transitionDelay,omitempty" yaml:"transitionDelay,omitempty"`
	AnimationSpeed  *float64        `json:"animationSpeed,omitempty" yaml:"animationSpeed,omitempty"`
	ExitEffect      bool            `json:"exitEffect,omitempty" yaml:"exitEffect,omitempty"`
	PositionX       *float64        `json:"positionX,omitempty" yaml:"positionX,omitempty"`
	PositionY       *float64        `json:"positionY,omitempty" yaml:"positionY,omitempty"`
	Color           string          `json:"color,omitempty" yaml:"color,omitempty"`
	FontSize        *float64        `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	BackgroundColor string          `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	SceneEntity     *RawSceneEntity `json:"sceneEntity,omitempty" yaml:"sceneEntity,omitempty"`
}

// RawSceneEntity carries the legacy overlay text under sceneEntity.entity.name.
type RawSceneEntity struct {
	Entity *struct {
		Name string `json:"name,omitempty" yaml:"name,omitempty"`
	} `json:"entity,omitempty" yaml:"entity,omitempty"`
}

// Float returns a pointer to v. Handy for building raw records in code.
func Float(v float64) *float64 {
	return &v
}
