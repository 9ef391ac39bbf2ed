package jpeg

// plane is one sample plane (Y, Cb or Cr) together with its true pixel
// dimensions. Width/Height are not necessarily multiples of the block or
// MCU size; extractBlock pads past the edge by replicating the last valid
// row/column, so every block handed to the DCT is a full 8x8 of real or
// replicated samples.
type plane struct {
	samples []byte
	width   int
	height  int
}

func (p *plane) at(x, y int) byte {
	if x >= p.width {
		x = p.width - 1
	}
	if y >= p.height {
		y = p.height - 1
	}
	return p.samples[y*p.width+x]
}

// extractBlock reads the 8x8 block whose top-left sample is (x,y), level
// shifting every sample by -128 as required before the forward DCT.
func (p *plane) extractBlock(x, y int) block {
	var b block
	for j := 0; j < blockSize; j++ {
		for i := 0; i < blockSize; i++ {
			b[j*blockSize+i] = float64(p.at(x+i, y+j)) - 128
		}
	}
	return b
}

// blocksWide and blocksHigh report how many 8x8 blocks are needed to cover
// the plane, rounding up so a partial edge block is still counted.
func (p *plane) blocksWide() int { return (p.width + blockSize - 1) / blockSize }
func (p *plane) blocksHigh() int { return (p.height + blockSize - 1) / blockSize }

// mcuBlock is one 8x8 block of level-shifted samples together with the
// channel it belongs to. The transform (forward DCT, quantization,
// zig-zag reorder) is applied afterwards, once the caller knows which
// quantization table the channel maps to.
type mcuBlock struct {
	channel Channel
	pixels  block
}

// mcuScanner walks a set of planes in MCU order: for 4:2:0 color, each MCU
// covers a 16x16 luma region and is emitted as four Y blocks in
// (0,0),(1,0),(0,1),(1,1) raster sub-order followed by one Cb and one Cr
// block; for grayscale, each MCU is a single 8x8 Y block.
type mcuScanner struct {
	y, cb, cr *plane
	color     bool
	mcusWide  int
	mcusHigh  int
}

func newMCUScanner(y, cb, cr *plane, color bool) *mcuScanner {
	s := &mcuScanner{y: y, cb: cb, cr: cr, color: color}
	if color {
		s.mcusWide = (y.width + 15) / 16
		s.mcusHigh = (y.height + 15) / 16
	} else {
		s.mcusWide = y.blocksWide()
		s.mcusHigh = y.blocksHigh()
	}
	return s
}

// forEachMCU calls fn once per MCU, in raster order, with the blocks that
// make up that MCU in transmission order.
func (s *mcuScanner) forEachMCU(fn func(blocks []mcuBlock)) {
	if !s.color {
		for my := 0; my < s.mcusHigh; my++ {
			for mx := 0; mx < s.mcusWide; mx++ {
				b := s.y.extractBlock(mx*blockSize, my*blockSize)
				fn([]mcuBlock{{channel: Luma, pixels: b}})
			}
		}
		return
	}

	lumaOffsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for my := 0; my < s.mcusHigh; my++ {
		for mx := 0; mx < s.mcusWide; mx++ {
			blocks := make([]mcuBlock, 0, 6)
			for _, off := range lumaOffsets {
				x := mx*16 + off[0]*blockSize
				y := my*16 + off[1]*blockSize
				b := s.y.extractBlock(x, y)
				blocks = append(blocks, mcuBlock{channel: Luma, pixels: b})
			}
			blocks = append(blocks, mcuBlock{channel: Cb, pixels: s.cb.extractBlock(mx*blockSize, my*blockSize)})
			blocks = append(blocks, mcuBlock{channel: Cr, pixels: s.cr.extractBlock(mx*blockSize, my*blockSize)})
			fn(blocks)
		}
	}
}
