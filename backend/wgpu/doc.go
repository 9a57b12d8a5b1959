// Package wgpu provides clip-mask textures on a gogpu/wgpu HAL device.
//
// Provider implements gpu.TextureProvider: scratch mask textures are
// created with hal.Device.CreateTexture, software masks are uploaded with
// hal.Queue.WriteTexture and format renderability comes from the adapter's
// capability flags. Released textures are pooled by description and
// destroyed when the idle budget is exceeded.
//
// A provider can own a device opened from an adapter, or borrow one from a
// host application:
//
//	p, err := wgpu.NewFromProvider(app) // app implements gpucontext.DeviceProvider
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	mgr := clipmask.New(target, p, chain)
//
// Borrowed devices are never destroyed by Close.
package wgpu
