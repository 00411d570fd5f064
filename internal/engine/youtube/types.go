package youtube

// YouTube caption surfaces: constants and wire types. The watch page embeds
// a player response JSON; the Innertube /player endpoint returns the same
// shape directly; timedtext URLs serve srv1 XML.

const (
	ytWatchURL       = "https://www.youtube.com/watch?v="
	ytPlayerURL      = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"
)

// Body size caps. Watch pages run to a few MB of markup; player responses
// and timedtext documents are far smaller.
const (
	watchPageMaxBytes = 6 * 1024 * 1024
	playerMaxBytes    = 3 * 1024 * 1024
	timedtextMaxBytes = 512 * 1024
)

// playerResponseMarker precedes the embedded player JSON on watch pages.
const playerResponseMarker = "ytInitialPlayerResponse = "

// --- ANDROID client types (/player endpoint) ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL        string     `json:"baseUrl"`
	Name           *trackName `json:"name"`
	LanguageCode   string     `json:"languageCode"`
	Kind           string     `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool       `json:"isTranslatable"`
}

// trackName covers both display-name shapes YouTube emits: plain simpleText
// or a runs array.
type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n *trackName) String() string {
	if n == nil {
		return ""
	}
	if n.SimpleText != "" {
		return n.SimpleText
	}
	if len(n.Runs) > 0 {
		return n.Runs[0].Text
	}
	return ""
}

// --- Timedtext XML types (srv1) ---

type ytTimedText struct {
	Lines []ytLine `xml:"text"`
}

type ytLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}
