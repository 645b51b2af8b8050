package classify

// Suggestions shared by several rules.
var (
	reloadSuggestions = []string{
		"Run the conversion again",
		"Check your network connection",
		"Clear the engine cache and retry",
	}
	otherFormatSuggestions = []string{
		"Choose a different output format",
		"Try a common format such as JPEG, PNG or WebP",
	}
)

// rules is evaluated top to bottom and the first match wins. Specific engine
// messages come before the generic patterns they would also match.
var rules = []Rule{
	// Engine initialization.
	{
		Pattern:     `Failed to fetch WASM file|WASM file is empty|Failed to initialize ImageMagick WASM|runtime binary .* is empty|runtime checksum mismatch|probe \S+ (encoder|decoder)`,
		Category:    Initialization,
		Message:     "The conversion engine failed to initialize",
		Recoverable: true,
		Suggestions: reloadSuggestions,
	},
	{
		Pattern:     `fetch runtime asset`,
		Category:    Network,
		Message:     "The conversion engine could not be downloaded",
		Recoverable: true,
		Suggestions: []string{
			"Check your network connection",
			"Check ffmpeg.base_url and ffmpeg.version",
			"Wait a moment and try again",
		},
	},
	{
		Pattern:     `WebAssembly instantiation failed|ffmpeg binary not found|executable file not found|exec format error`,
		Category:    Initialization,
		Message:     "The conversion engine is not available on this system",
		Recoverable: false,
		Suggestions: []string{
			"Install ffmpeg or set ffmpeg.path to an ffmpeg binary",
			"Use an ffmpeg build for this operating system and architecture",
		},
	},
	{
		Pattern:     `float unrepresentable in integer range|RuntimeError.*integer range|integer overflow`,
		Category:    Processing,
		Message:     "A numeric error occurred while processing the image",
		Recoverable: true,
		Suggestions: []string{
			"Lower the quality setting and try again",
			"Reduce the image size and try again",
			"Try a different output format",
		},
	},

	// Formats.
	{
		Pattern:     `Unsupported output format|Format.*not found in MagickFormat|not available in (MagickFormat|raster engine|ffmpeg engine)|Requested output format .* is not a suitable output format|Unknown encoder|Unable to find a suitable output format`,
		Category:    Format,
		Message:     "The selected output format is not supported",
		Recoverable: true,
		Suggestions: otherFormatSuggestions,
	},
	{
		Pattern:     `Failed to get MagickFormat enum`,
		Category:    Format,
		Message:     "The format conversion failed",
		Recoverable: true,
		Suggestions: []string{
			"Choose a different output format",
			"Open the file again and retry",
		},
	},
	{
		Pattern:     `no decode delegate for this image format|Unknown image format|image: unknown format`,
		Category:    Format,
		Message:     "This image format cannot be read",
		Recoverable: true,
		Suggestions: []string{
			"Use a common image file such as JPEG, PNG, GIF or WebP",
			"Check that the file is not corrupted",
		},
	},
	{
		Pattern:     `unable to read image data|corrupt image|invalid image|malformed image|unexpected EOF|invalid JPEG format|(png|bmp|tiff|gif|webp): invalid format`,
		Category:    File,
		Message:     "The image file is corrupted or unreadable",
		Recoverable: true,
		Suggestions: []string{
			"Try a different image file",
			"Make sure the file was completely downloaded or saved",
		},
	},

	// Memory.
	{
		Pattern:     `out of memory|memory allocation failed|insufficient memory|cannot allocate memory`,
		Category:    Memory,
		Message:     "There is not enough memory to finish the conversion",
		Recoverable: true,
		Suggestions: []string{
			"Reduce the image size and try again",
			"Lower the quality setting and try again",
			"Close other applications and try again",
		},
	},
	{
		Pattern:     `Maximum call stack size exceeded|stack overflow|goroutine stack exceeds`,
		Category:    Memory,
		Message:     "The image is too complex to process",
		Recoverable: true,
		Suggestions: []string{
			"Try a smaller image",
			"Split the image and process the parts",
		},
	},

	// File access.
	{
		Pattern:     `unable to open file|file not found|access denied`,
		Category:    File,
		Message:     "The file cannot be accessed",
		Recoverable: true,
		Suggestions: []string{
			"Select the file again",
			"Check that the file exists",
		},
	},
	{
		Pattern:     `file too large|image dimensions too large|image too large`,
		Category:    File,
		Message:     "The file or the image dimensions are too large",
		Recoverable: true,
		Suggestions: []string{
			"Use a smaller image",
			"Reduce the image size in an editor first",
		},
	},

	// Network.
	{
		Pattern:     `network error|fetch.*failed|connection.*failed|connection refused|no such host|i/o timeout|TLS handshake`,
		Category:    Network,
		Message:     "A network error occurred",
		Recoverable: true,
		Suggestions: []string{
			"Check your network connection",
			"Wait a moment and try again",
		},
	},

	// Processing.
	{
		Pattern:     `operation not supported|feature not supported`,
		Category:    Processing,
		Message:     "This operation is not supported",
		Recoverable: true,
		Suggestions: []string{
			"Try a different approach",
			"Use more common settings",
		},
	},
	{
		Pattern:     `invalid parameter|invalid argument|parameter out of range`,
		Category:    Processing,
		Message:     "A setting has an invalid value",
		Recoverable: true,
		Suggestions: []string{
			"Check the settings",
			"Reset to the default settings and try again",
		},
	},
	{
		Pattern:     `timeout|operation timed out|deadline exceeded`,
		Category:    Processing,
		Message:     "The conversion took too long and was stopped",
		Recoverable: true,
		Suggestions: []string{
			"Try a smaller image",
			"Try simpler settings",
			"Raise conversion.timeout",
		},
	},
	{
		Pattern:     `context canceled|signal: killed|signal: interrupt`,
		Category:    Processing,
		Message:     "The conversion was interrupted",
		Recoverable: true,
		Suggestions: []string{
			"Run the conversion again",
		},
	},
	{
		Pattern:     `WebAssembly.*abort|wasm.*abort|signal: (abort|aborted|segmentation fault)`,
		Category:    Processing,
		Message:     "An unexpected error occurred during processing",
		Recoverable: true,
		Suggestions: []string{
			"Run the conversion again",
			"Try a different image",
		},
	},
	{
		Pattern:     `CompileError|LinkError|RuntimeError.*wasm`,
		Category:    Initialization,
		Message:     "The conversion engine cannot run on this system",
		Recoverable: false,
		Suggestions: []string{
			"Update the conversion engine",
			"Use the other engine",
		},
	},

	// Permissions.
	{
		Pattern:     `permission denied|access forbidden|operation not permitted`,
		Category:    File,
		Message:     "You do not have permission to access the file",
		Recoverable: true,
		Suggestions: []string{
			"Select the file again",
			"Check the file permissions",
		},
	},

	// ffmpeg.
	{
		Pattern:     `Failed to initialize FFmpeg|initialize (ffmpeg|raster) engine`,
		Category:    Initialization,
		Message:     "The conversion engine failed to initialize",
		Recoverable: true,
		Suggestions: reloadSuggestions,
	},
	{
		Pattern:     `SharedArrayBuffer.*not defined|Cross-Origin.*required`,
		Category:    Initialization,
		Message:     "Security restrictions prevent the ffmpeg engine from running",
		Recoverable: false,
		Suggestions: []string{
			"Run ffmpeg outside the sandbox",
			"Use the raster engine",
		},
	},
	{
		Pattern:     `FFmpeg instance.*failed`,
		Category:    Initialization,
		Message:     "The ffmpeg engine failed to start",
		Recoverable: true,
		Suggestions: []string{
			"Run the conversion again",
			"Wait a moment and try again",
			"Check that the ffmpeg binary runs on its own",
		},
	},
	{
		Pattern:     `FFmpeg command.*failed`,
		Category:    Processing,
		Message:     "ffmpeg failed to process the image",
		Recoverable: true,
		Suggestions: []string{
			"Try a different output format",
			"Reduce the image size and try again",
			"Change the quality setting and try again",
		},
	},
	{
		Pattern:     `FFmpeg output.*invalid|engine output invalid`,
		Category:    Processing,
		Message:     "The engine produced an invalid result",
		Recoverable: true,
		Suggestions: []string{
			"Try a different image file",
			"Change the output format and try again",
			"Run the conversion again",
		},
	},
	{
		Pattern:     `Both ImageMagick and FFmpeg.*failed|all engines failed`,
		Category:    Processing,
		Message:     "Every conversion engine failed",
		Recoverable: true,
		Suggestions: []string{
			"Check that the image file is not corrupted",
			"Try a common format such as JPEG or PNG",
			"Reduce the image size and try again",
			"Run the conversion again",
		},
	},
	{
		Pattern:     `ErrnoError.*FS error|FFmpeg.*FS error|unable to open.*No such file|open .*: no such file or directory`,
		Category:    File,
		Message:     "A file handling error occurred",
		Recoverable: true,
		Suggestions: []string{
			"Try a different image file",
			"Check the file format",
			"Run the conversion again",
		},
	},
	{
		Pattern:     `FFmpeg.*command.*failed|Invalid data found when processing input`,
		Category:    Processing,
		Message:     "An ffmpeg processing error occurred",
		Recoverable: true,
		Suggestions: []string{
			"Try a different output format",
			"Check that the image is not corrupted",
			"Try a more common image format",
		},
	},
}

var fallback = Descriptor{
	Category:    Unknown,
	Message:     "An unexpected error occurred",
	Recoverable: true,
	Suggestions: []string{
		"Run the conversion again",
		"Try a different image or format",
		"If the problem persists, wait a while and try again",
	},
}

var recommended = map[Category][]string{
	Initialization: {
		"Run the conversion again",
		"Update the conversion engine",
		"Clear the engine cache and retry",
	},
	Format: otherFormatSuggestions,
	Memory: {
		"Reduce the image size and try again",
		"Close other applications",
		"Lower the quality setting and try again",
	},
	Processing: {
		"Check the settings and try again",
		"Use a smaller image",
		"Reset to the default settings and try again",
	},
	File: {
		"Select the file again",
		"Check that the file is not corrupted",
		"Try a different image file",
	},
	Network: {
		"Check your network connection",
		"Wait a moment and try again",
	},
}
