package mccs

import "github.com/roach88/vcpctl/internal/vcp"

var preset = []vcp.DictionaryEntry{
	{Key: 0x00, Name: "Code Page", Type: vcp.Table, Description: "Set/get the VCP code page"},
	{Key: 0x04, Name: "Factory Defaults", Type: vcp.NonContinuous, Aliases: []string{"Restore"}, Description: "Restores all factory presets including luminance / contrast on a non-zero write"},
	{Key: 0x05, Name: "Factory Luminance/Contrast Defaults", Type: vcp.NonContinuous, Aliases: []string{"Restore Luminance/Contrast"}, Description: "Restores factory defaults for luminance and constrast on a non-zero write"},
	{Key: 0x06, Name: "Factory Geometry Defaults", Type: vcp.NonContinuous, Aliases: []string{"Restore Geometry"}, Description: "Restores factory defaults for geometry adjustments on a non-zero write"},
	{Key: 0x08, Name: "Factory Color Defaults", Type: vcp.NonContinuous, Aliases: []string{"Restore Color"}, Description: "Restores factory defaults for color settings on a non-zero write"},
	{Key: 0x0A, Name: "Factory TV Defaults", Type: vcp.NonContinuous, Aliases: []string{"Restore TV"}, Description: "Restores factory defaults for TV functions on a non-zero write"},
	{Key: 0xB0, Name: "Settings", Type: vcp.NonContinuous, Description: "Store/Restore the user saved values for the current mode"},
}

var imageAdjustment = []vcp.DictionaryEntry{
	{Key: 0x0B, Name: "User Color Temperature Increment", Type: vcp.NonContinuous},
	{Key: 0x0C, Name: "User Color Temperature", Type: vcp.NonContinuous},
	{Key: 0x0E, Name: "Clock", Type: vcp.Continuous, Aliases: []string{"Frequency"}, Description: "Video sampling clock frequency"},
	{Key: 0x10, Name: "Luminance", Type: vcp.Continuous},
	{Key: 0x11, Name: "Flesh Tone Enhancement", Type: vcp.NonContinuous, Aliases: []string{"Flesh Tone", "Contrast Enhancement"}, Description: "Selection of Contrast Enhancement Algorithms"},
	{Key: 0x12, Name: "Contrast", Type: vcp.Continuous},
	{Key: 0x13, Name: "Backlight Control", Type: vcp.Continuous},
	{Key: 0x14, Name: "Color Preset", Type: vcp.NonContinuous, Aliases: []string{"Color Temperature"}},
	{Key: 0x16, Name: "Red Gain", Type: vcp.Continuous, Aliases: []string{"Red"}},
	{Key: 0x17, Name: "Color Vision Compensation", Type: vcp.Continuous},
	{Key: 0x18, Name: "Green Gain", Type: vcp.Continuous, Aliases: []string{"Green"}},
	{Key: 0x1A, Name: "Blue Gain", Type: vcp.Continuous, Aliases: []string{"Blue"}},
	{Key: 0x1C, Name: "Focus", Type: vcp.Continuous},
	{Key: 0x1E, Name: "Auto Focus", Type: vcp.NonContinuous, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Disabled"}},
		{Key: 0x01, Names: []string{"Performing"}},
		{Key: 0x02, Names: []string{"Continuous"}},
	}},
	{Key: 0x1F, Name: "Auto Color Setup", Type: vcp.NonContinuous, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Disabled"}},
		{Key: 0x01, Names: []string{"Performing"}},
		{Key: 0x02, Names: []string{"Continuous"}},
	}},
	{Key: 0x2E, Name: "Gray Scale Expansion", Type: vcp.NonContinuous},
	{Key: 0x3E, Name: "Clock Phase", Type: vcp.Continuous},
	{Key: 0x56, Name: "Horizontal Moire", Type: vcp.Continuous},
	{Key: 0x58, Name: "Vertical Moire", Type: vcp.Continuous},
	{Key: 0x59, Name: "Red Saturation", Type: vcp.Continuous, Values: []vcp.DictionaryValue{
		{Key: 0x7F, Names: []string{"Nominal"}},
	}},
	{Key: 0x5A, Name: "Yellow Saturation", Type: vcp.Continuous, Values: []vcp.DictionaryValue{
		{Key: 0x7F, Names: []string{"Nominal"}},
	}},
	{Key: 0x5B, Name: "Green Saturation", Type: vcp.Continuous, Values: []vcp.DictionaryValue{
		{Key: 0x7F, Names: []string{"Nominal"}},
	}},
	{Key: 0x5C, Name: "Cyan Saturation", Type: vcp.Continuous, Values: []vcp.DictionaryValue{
		{Key: 0x7F, Names: []string{"Nominal"}},
	}},
	{Key: 0x5D, Name: "Blue Saturation", Type: vcp.Continuous, Values: []vcp.DictionaryValue{
		{Key: 0x7F, Names: []string{"Nominal"}},
	}},
	{Key: 0x5E, Name: "Magenta Saturation", Type: vcp.Continuous, Values: []vcp.DictionaryValue{
		{Key: 0x7F, Names: []string{"Nominal"}},
	}},
	{Key: 0x6B, Name: "White Backlight", Type: vcp.Continuous},
	{Key: 0x6C, Name: "Red Black Level", Type: vcp.Continuous},
	{Key: 0x6D, Name: "Red Backlight", Type: vcp.Continuous},
	{Key: 0x6E, Name: "Green Black Level", Type: vcp.Continuous},
	{Key: 0x6F, Name: "Green Backlight", Type: vcp.Continuous},
	{Key: 0x70, Name: "Blue Black Level", Type: vcp.Continuous},
	{Key: 0x71, Name: "Blue Backlight", Type: vcp.Continuous},
	{Key: 0x72, Name: "Gamma", Type: vcp.NonContinuous},
	{Key: 0x73, Name: "LUT Size", Type: vcp.Table},
	{Key: 0x74, Name: "Single Point LUT Operation", Type: vcp.Table},
	{Key: 0x75, Name: "Block LUT Operation", Type: vcp.Table},
	{Key: 0x7C, Name: "Zoom", Type: vcp.Continuous, Aliases: []string{"Adjust Zoom"}, Description: "Zoom function"},
	{Key: 0x87, Name: "Sharpness", Type: vcp.Continuous},
	{Key: 0x88, Name: "Velocity Scan Modulation", Type: vcp.Continuous},
	{Key: 0x8A, Name: "Saturation", Type: vcp.Continuous, Aliases: []string{"Color Saturation"}},
	{Key: 0x8C, Name: "TV Sharpness", Type: vcp.Continuous, Description: "Sharpness control for TV inputs"},
	{Key: 0x8E, Name: "TV Contrast", Type: vcp.Continuous, Description: "Contrast control for TV inputs"},
	{Key: 0x90, Name: "Hue", Type: vcp.Continuous, Aliases: []string{"Tint"}},
	{Key: 0x92, Name: "TV Black Level", Type: vcp.Continuous, Description: "Black Level control for TV inputs"},
	{Key: 0x9A, Name: "Window Background", Type: vcp.Continuous, Description: "Contrast ratio between area of the window and the rest of the desktop"},
	{Key: 0x9B, Name: "Red Hue", Type: vcp.Continuous},
	{Key: 0x9C, Name: "Yellow Hue", Type: vcp.Continuous},
	{Key: 0x9D, Name: "Green Hue", Type: vcp.Continuous},
	{Key: 0x9E, Name: "Cyan Hue", Type: vcp.Continuous},
	{Key: 0x9F, Name: "Blue Hue", Type: vcp.Continuous},
	{Key: 0xA0, Name: "Magenta Hue", Type: vcp.Continuous},
	{Key: 0xA2, Name: "Auto Setup", Type: vcp.NonContinuous, Values: []vcp.DictionaryValue{
		{Key: 0x01, Names: []string{"Off"}},
		{Key: 0x02, Names: []string{"On"}},
	}},
	{Key: 0xA4, Name: "Window Mask Control", Type: vcp.Table},
	{Key: 0xA5, Name: "Window Select", Type: vcp.Continuous},
	{Key: 0xA6, Name: "Window Size", Type: vcp.Continuous},
	{Key: 0xA7, Name: "Window Transparency", Type: vcp.Continuous},
	{Key: 0xAA, Name: "Screen Orientation", Type: vcp.NonContinuous, Aliases: []string{"Orientation"}, Values: []vcp.DictionaryValue{
		{Key: 0x01, Names: []string{"0 degrees"}},
		{Key: 0x02, Names: []string{"90 degrees"}},
		{Key: 0x03, Names: []string{"180 degrees"}},
		{Key: 0x04, Names: []string{"270 degrees"}},
		{Key: 0xFF, Names: []string{"Not Applicable"}},
	}},
	{Key: 0xD4, Name: "Stereo Video Mode", Type: vcp.NonContinuous, Aliases: []string{"Stereo"}},
	{Key: 0xDC, Name: "Display Application", Type: vcp.NonContinuous, Aliases: []string{"Application", "Preset"}, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Stand", "Default"}},
		{Key: 0x01, Names: []string{"Productivity"}},
		{Key: 0x02, Names: []string{"Mixed"}},
		{Key: 0x03, Names: []string{"Movie", "Cinema"}},
		{Key: 0x04, Names: []string{"User"}},
		{Key: 0x05, Names: []string{"Games", "Gaming"}},
		{Key: 0x06, Names: []string{"Sports"}},
		{Key: 0x07, Names: []string{"Professional"}},
		{Key: 0x08, Names: []string{"Standard"}},
		{Key: 0x09, Names: []string{"Low power"}},
		{Key: 0x0A, Names: []string{"Demonstration"}},
		{Key: 0xF0, Names: []string{"Dynamic Contrast"}},
	}},
}

var displayControl = []vcp.DictionaryEntry{
	{Key: 0xB4, Name: "Source Timing Mode", Type: vcp.Table, Aliases: []string{"Timing"}},
	{Key: 0xCA, Name: "OSD / Button Control", Type: vcp.NonContinuous, Aliases: []string{"OSD Control", "Button Control"}},
	{Key: 0xAC, Name: "Horizontal Frequency", Type: vcp.Continuous},
	{Key: 0xAE, Name: "Vertical Frequency", Type: vcp.Continuous},
	{Key: 0xB5, Name: "Source Color Coding", Type: vcp.NonContinuous},
	{Key: 0xC0, Name: "Display Usage Time", Type: vcp.Continuous, Aliases: []string{"Power On Time", "Uptime"}, Description: "Hours of active power on time"},
	{Key: 0xC8, Name: "Display Controller ID", Type: vcp.NonContinuous},
	{Key: 0xC9, Name: "Display Firmware Level", Type: vcp.Continuous},
	{Key: 0xCC, Name: "OSD Language", Type: vcp.NonContinuous},
	{Key: 0xD6, Name: "Power Mode", Type: vcp.NonContinuous, Aliases: []string{"Power"}, Values: []vcp.DictionaryValue{
		{Key: 0x01, Names: []string{"On"}},
		{Key: 0x02, Names: []string{"Standby"}},
		{Key: 0x03, Names: []string{"Suspend"}},
		{Key: 0x04, Names: []string{"Off"}},
		{Key: 0x05, Names: []string{"Hard Off"}},
	}},
	{Key: 0xDB, Name: "Image Mode", Type: vcp.NonContinuous, Values: []vcp.DictionaryValue{
		{Key: 0x01, Names: []string{"Full"}},
		{Key: 0x02, Names: []string{"Zoom"}},
		{Key: 0x03, Names: []string{"Squeeze"}},
		{Key: 0x04, Names: []string{"Variable"}},
	}},
	{Key: 0xDF, Name: "VCP Version", Type: vcp.NonContinuous},
}

var geometry = []vcp.DictionaryEntry{
	{Key: 0x20, Name: "Horizontal Position", Type: vcp.Continuous, Aliases: []string{"Horizontal Phase"}},
	{Key: 0x22, Name: "Horizontal Size", Type: vcp.Continuous},
	{Key: 0x24, Name: "Horizontal Pincushion", Type: vcp.Continuous},
	{Key: 0x26, Name: "Horizontal Pincushion Balance", Type: vcp.Continuous},
	{Key: 0x28, Name: "Horizontal Convergence R/B", Type: vcp.Continuous},
	{Key: 0x29, Name: "Horizontal Convergence M/G", Type: vcp.Continuous},
	{Key: 0x2A, Name: "Horizontal Linearity", Type: vcp.Continuous},
	{Key: 0x2C, Name: "Horizontal Linearity Balance", Type: vcp.Continuous},
	{Key: 0x30, Name: "Vertical Position", Type: vcp.Continuous, Aliases: []string{"Vertical Phase"}},
	{Key: 0x32, Name: "Vertical Size", Type: vcp.Continuous},
	{Key: 0x34, Name: "Vertical Pincushion", Type: vcp.Continuous},
	{Key: 0x36, Name: "Vertical Pincushion Balance", Type: vcp.Continuous},
	{Key: 0x38, Name: "Vertical Convergence R/B", Type: vcp.Continuous},
	{Key: 0x39, Name: "Vertical Convergence M/G", Type: vcp.Continuous},
	{Key: 0x3A, Name: "Vertical Linearity", Type: vcp.Continuous},
	{Key: 0x3C, Name: "Vertical Linearity Balance", Type: vcp.Continuous},
	{Key: 0x40, Name: "Horizontal Parallelogram", Type: vcp.Continuous},
	{Key: 0x41, Name: "Vertical Parallelogram", Type: vcp.Continuous},
	{Key: 0x42, Name: "Horizontal Keystone", Type: vcp.Continuous},
	{Key: 0x43, Name: "Vertical Keystone", Type: vcp.Continuous},
	{Key: 0x44, Name: "Rotation", Type: vcp.Continuous},
	{Key: 0x46, Name: "Top Corner Flare", Type: vcp.Continuous},
	{Key: 0x48, Name: "Top Corner Hook", Type: vcp.Continuous},
	{Key: 0x4A, Name: "Bottom Corner Flare", Type: vcp.Continuous},
	{Key: 0x4C, Name: "Bottom Corner Hook", Type: vcp.Continuous},
	{Key: 0x82, Name: "Horizontal Mirror", Type: vcp.NonContinuous, Aliases: []string{"Horizontal Flip"}, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Normal"}},
		{Key: 0x11, Names: []string{"Mirrored", "Flipped"}},
	}},
	{Key: 0x84, Name: "Vertical Mirror", Type: vcp.NonContinuous, Aliases: []string{"Vertical Flip"}, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Normal"}},
		{Key: 0x11, Names: []string{"Mirrored", "Flipped"}},
	}},
	{Key: 0x86, Name: "Display Scaling", Type: vcp.NonContinuous, Aliases: []string{"Scaling"}},
	{Key: 0x95, Name: "Window Position TL_X", Type: vcp.Continuous, Aliases: []string{"TL_X"}},
	{Key: 0x96, Name: "Window Position TL_Y", Type: vcp.Continuous, Aliases: []string{"TL_Y"}},
	{Key: 0x97, Name: "Window Position BR_X", Type: vcp.Continuous, Aliases: []string{"BR_X"}},
	{Key: 0x98, Name: "Window Position BR_Y", Type: vcp.Continuous, Aliases: []string{"BR_Y"}},
	{Key: 0xDA, Name: "Scan Mode", Type: vcp.NonContinuous, Aliases: []string{"Scan"}, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Normal"}},
		{Key: 0x01, Names: []string{"Underscan"}},
		{Key: 0x02, Names: []string{"Overscan"}},
	}},
}

var miscellaneous = []vcp.DictionaryEntry{
	{Key: 0x54, Name: "Performance Preservation", Type: vcp.NonContinuous, Description: "Control up to 16 features aimed at maintaining the performance of the display"},
	{Key: 0x60, Name: "Input Select", Type: vcp.NonContinuous, Aliases: []string{"Input"}, Values: []vcp.DictionaryValue{
		{Key: 0x01, Names: []string{"RGB 1", "Analog 1"}},
		{Key: 0x02, Names: []string{"RGB 2", "Analog 2"}},
		{Key: 0x03, Names: []string{"DVI 1", "Digital 1"}},
		{Key: 0x04, Names: []string{"DVI 2", "Digital 2"}},
		{Key: 0x05, Names: []string{"Composite 1"}},
		{Key: 0x06, Names: []string{"Composite 2"}},
		{Key: 0x07, Names: []string{"S-Video 1"}},
		{Key: 0x08, Names: []string{"S-Video 2"}},
		{Key: 0x09, Names: []string{"Tuner 1"}},
		{Key: 0x0A, Names: []string{"Tuner 2"}},
		{Key: 0x0B, Names: []string{"Tuner 3"}},
		{Key: 0x0C, Names: []string{"Component 1"}},
		{Key: 0x0D, Names: []string{"Component 2"}},
		{Key: 0x0E, Names: []string{"Component 3"}},
		{Key: 0x0F, Names: []string{"DP 1", "DisplayPort 1"}},
		{Key: 0x10, Names: []string{"DP 2", "DisplayPort 2"}},
		{Key: 0x11, Names: []string{"HDMI 1", "Digital 3"}},
		{Key: 0x12, Names: []string{"HDMI 2", "Digital 4"}},
	}},
	{Key: 0x66, Name: "Ambient Light Sensor", Type: vcp.NonContinuous},
	{Key: 0x76, Name: "Remote Procedure Call", Type: vcp.Table, Aliases: []string{"RPC"}},
	{Key: 0x78, Name: "Display Identification Data Operation", Type: vcp.Table},
	{Key: 0x8B, Name: "TV Channel Up/Down", Type: vcp.NonContinuous, Aliases: []string{"TV Channel"}, Values: []vcp.DictionaryValue{
		{Key: 0x01, Names: []string{"Up", "Increment"}},
		{Key: 0x02, Names: []string{"Down", "Decrement"}},
	}},
	{Key: 0xB2, Name: "Flat Panel Sub-Pixel Layout", Type: vcp.NonContinuous, Aliases: []string{"Sub-Pixel Layout", "SPL"}, Values: []vcp.DictionaryValue{
		{Key: 0x00, Names: []string{"Undefined"}},
		{Key: 0x01, Names: []string{"RGB vertical"}},
		{Key: 0x02, Names: []string{"RGB horizontal"}},
		{Key: 0x03, Names: []string{"BGR vertical"}},
		{Key: 0x04, Names: []string{"BGR horizontal"}},
		{Key: 0x05, Names: []string{"Quad RGBG"}},
		{Key: 0x06, Names: []string{"Quad BGRG"}},
		{Key: 0x07, Names: []string{"Delta", "Triad"}},
		{Key: 0x08, Names: []string{"Mosaic"}},
	}},
	{Key: 0xB6, Name: "Display Technology Type", Type: vcp.NonContinuous, Aliases: []string{"Technology"}},
	{Key: 0xC2, Name: "Display Descriptor Length", Type: vcp.Continuous},
	{Key: 0xC3, Name: "Transmit Display Descriptor", Type: vcp.Table},
	{Key: 0xC4, Name: "Enable Display of Display Descriptor", Type: vcp.NonContinuous},
	{Key: 0xC6, Name: "Application Enable Key", Type: vcp.NonContinuous},
	{Key: 0xC7, Name: "Display Enable Key", Type: vcp.NonContinuous},
	{Key: 0xCD, Name: "Host Status Indicators", Type: vcp.NonContinuous},
	{Key: 0xCE, Name: "Auxiliary Display Size", Type: vcp.NonContinuous},
	{Key: 0xCF, Name: "Auxiliary Display Data", Type: vcp.Table},
	{Key: 0xD0, Name: "Output Select", Type: vcp.NonContinuous},
	{Key: 0xD2, Name: "Asset Tag", Type: vcp.Table},
	{Key: 0xD7, Name: "Auxiliary Power Output", Type: vcp.NonContinuous},
	{Key: 0xDE, Name: "Scratch Pad", Type: vcp.NonContinuous},
}

var audio = []vcp.DictionaryEntry{
	{Key: 0x62, Name: "Speaker Volume", Type: vcp.NonContinuous, Aliases: []string{"Volume"}},
	{Key: 0x63, Name: "Speaker Select", Type: vcp.NonContinuous},
	{Key: 0x64, Name: "Microphone Volume", Type: vcp.Continuous},
	{Key: 0x65, Name: "Jack Connection Status", Type: vcp.NonContinuous},
	{Key: 0x8D, Name: "Audio Mute / Screen Blank", Type: vcp.NonContinuous, Aliases: []string{"Audio Mute", "Mute", "Screen Blank", "Blank"}},
	{Key: 0x8F, Name: "Audio Treble", Type: vcp.NonContinuous, Aliases: []string{"Treble"}},
	{Key: 0x91, Name: "Audio Bass", Type: vcp.NonContinuous, Aliases: []string{"Bass"}},
	{Key: 0x93, Name: "Audio Balance L/R", Type: vcp.NonContinuous, Aliases: []string{"Audio Balance"}},
	{Key: 0x94, Name: "Audio Processor Mode", Type: vcp.NonContinuous},
}

var dpvl = []vcp.DictionaryEntry{
	{Key: 0xB7, Name: "Monitor Status", Type: vcp.NonContinuous},
	{Key: 0xB8, Name: "Packet Count", Type: vcp.Continuous},
	{Key: 0xB9, Name: "Monitor X Origin", Type: vcp.Continuous},
	{Key: 0xBA, Name: "Monitor Y Origin", Type: vcp.Continuous},
	{Key: 0xBB, Name: "Header Error Count", Type: vcp.Continuous},
	{Key: 0xBC, Name: "Body CRC Error Count", Type: vcp.Continuous},
	{Key: 0xBD, Name: "Client ID", Type: vcp.Continuous},
	{Key: 0xBE, Name: "Link Control", Type: vcp.NonContinuous},
}
