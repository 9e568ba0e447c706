package display

// Window constants
const (
	// DefaultTitle is the window and terminal title
	DefaultTitle = "gfs"
	// DefaultWindowWidth is the initial backbuffer and window width
	DefaultWindowWidth = 900
	// DefaultWindowHeight is the initial backbuffer and window height
	DefaultWindowHeight = 600
)

// Pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Player constants. Coordinates are backbuffer coordinates: with the default
// bottom-up row order, increasing Y moves the player up the screen.
const (
	PlayerInitX  = 100
	PlayerInitY  = 60
	PlayerWidth  = 160
	PlayerHeight = 80
	// PlayerSpeed is the distance moved per frame while a direction is held
	PlayerSpeed = 10
)

// Demo line endpoints
const (
	LineX1 = 100
	LineY1 = 200
	LineX2 = 500
	LineY2 = 600
)

// Audio constants
const (
	// SamplesPerSecond is the output sample rate
	SamplesPerSecond = 48000
	// ToneHz is the frequency of the test tone
	ToneHz = 256
	// ToneVolume is the peak amplitude of the test tone
	ToneVolume = 1000
	// AudioChannels is the number of interleaved output channels
	AudioChannels = 2
	// BytesPerSample is the size of one interleaved stereo frame of int16 samples
	BytesPerSample = 2 * AudioChannels
	// AudioBufferSize is one second of audio in bytes
	AudioBufferSize = SamplesPerSecond * BytesPerSample
)
