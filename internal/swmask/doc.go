// Package swmask renders clip elements into an 8-bit coverage bitmap on the
// CPU and uploads the result as an alpha texture. It also exposes the
// coverage rasterizers shared with the software device.
package swmask
