package config

// Known shot metadata tags. Statistics seed these at zero so empty
// categories still appear; unknown tags are counted as they show up.
// Hiding zero rows is a presentation concern, not handled here.

var KnownShotSizes = []string{
	"EXTREME_WIDE", "WIDE", "FULL", "MID",
	"MEDIUM_CLOSE", "CLOSE", "EXTREME_CLOSE", "OTHER",
}

var KnownShotTypes = []string{
	"STATIC", "PAN", "TILT", "DOLLY", "TRUCK", "PEDESTAL",
	"ZOOM", "HAND_HELD", "CRANE", "STEADICAM", "AERIAL", "OTHER",
}

var KnownEquipment = []string{
	"TRIPOD", "SHOULDER", "GIMBAL", "DOLLY_TRACK", "SLIDER",
	"CRANE", "STEADICAM", "DRONE", "HANDHELD", "VIRTUAL", "OTHER",
}

var KnownPassTypes = []string{
	"BEAUTY", "DIFFUSE", "SPECULAR", "SHADOW", "AO", "DEPTH",
	"NORMAL", "MIST", "EMISSION", "ENVIRONMENT", "CUSTOM",
}
