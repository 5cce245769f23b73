package spvenc

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/spvenc/spirv"
)

func TestEmit_MinimalModule(t *testing.T) {
	var returnID uint32
	words, err := Emit(func(e *spirv.Encoder) {
		e.OpCapability(spirv.CapabilityShader)
		e.OpMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
		returnID = e.AllocID()
		e.OpReturn()
	})
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	if len(words) != 11 {
		t.Fatalf("module length: got %d words, want 11", len(words))
	}
	if words[0] != spirv.MagicNumber {
		t.Errorf("magic: got 0x%08x, want 0x%08x", words[0], spirv.MagicNumber)
	}
	if words[1] != spirv.Version1_3.Word() {
		t.Errorf("version: got 0x%08x, want 0x%08x", words[1], spirv.Version1_3.Word())
	}
	if words[spirv.BoundOffset] != returnID+1 {
		t.Errorf("bound: got %d, want %d", words[spirv.BoundOffset], returnID+1)
	}
}

func TestEmit_EmptyBody(t *testing.T) {
	words, err := Emit(nil)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if len(words) != spirv.HeaderWords {
		t.Errorf("got %d words, want %d", len(words), spirv.HeaderWords)
	}
	if words[spirv.BoundOffset] != 1 {
		t.Errorf("bound: got %d, want 1", words[spirv.BoundOffset])
	}
}

func TestEmitWithOptions_Version(t *testing.T) {
	opts := spirv.DefaultOptions()
	opts.Version = spirv.Version1_6
	opts.InitialCapacity = 16

	words, err := EmitWithOptions(opts, func(e *spirv.Encoder) {
		for i := 0; i < 20; i++ {
			e.OpTypeVoid(e.AllocID())
		}
	})
	if err != nil {
		t.Fatalf("EmitWithOptions failed: %v", err)
	}
	if words[1] != 0x00010600 {
		t.Errorf("version: got 0x%08x, want 0x00010600", words[1])
	}
	if len(words) != spirv.HeaderWords+40 {
		t.Errorf("length: got %d, want %d", len(words), spirv.HeaderWords+40)
	}
	if words[spirv.BoundOffset] != 21 {
		t.Errorf("bound: got %d, want 21", words[spirv.BoundOffset])
	}
}

func TestEmitBytes(t *testing.T) {
	data, err := EmitBytes(func(e *spirv.Encoder) {
		e.OpCapability(spirv.CapabilityShader)
	})
	if err != nil {
		t.Fatalf("EmitBytes failed: %v", err)
	}
	if len(data) != 4*(spirv.HeaderWords+2) {
		t.Fatalf("got %d bytes, want %d", len(data), 4*(spirv.HeaderWords+2))
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != spirv.MagicNumber {
		t.Errorf("Invalid SPIR-V magic: got 0x%08x, want 0x%08x", magic, spirv.MagicNumber)
	}
}

func TestEmit_InstructionTooLong(t *testing.T) {
	_, err := Emit(func(e *spirv.Encoder) {
		e.OpTypeStruct(e.AllocID(), make([]uint32, 0x10000)...)
	})
	if err == nil {
		t.Fatal("expected error for oversized instruction")
	}
	if !errors.Is(err, spirv.ErrInstructionTooLong) {
		t.Errorf("error = %v, want ErrInstructionTooLong", err)
	}
}

func TestEmit_ForeignPanicPropagates(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	_, _ = Emit(func(e *spirv.Encoder) {
		panic("boom")
	})
	t.Error("Emit returned after body panicked")
}

func TestEmit_BufferMisusePropagates(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, spirv.ErrBackpatchOutOfRange) {
			t.Errorf("recovered %v, want ErrBackpatchOutOfRange panic", r)
		}
	}()
	_, _ = Emit(func(e *spirv.Encoder) {
		spirv.NewWordBuffer(1).Backpatch(spirv.BoundOffset, 0)
	})
	t.Error("Emit returned after body misused a buffer")
}
