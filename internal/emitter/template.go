package emitter

import "html/template"

var pageTmpl = template.Must(template.New("chart").Parse(chartPage))

// chartPage — страница с двумя канвами: нижняя рисует дорожки,
// верхняя — подсветку под курсором. Colors и Blocks подставляются
// шаблоном как JSON.
const chartPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf8">
<title>Execution timeline</title>
<style>
canvas {
    position: absolute;
    left: 0.5em;
    top: 0.5em;
}
#aux {
    position: fixed;
    right: 0.5em;
    top: 0.5em;
    width: 30em;
    font-family: sans-serif;
    font-size: 0.75em;
}
</style>
</head>
<body>
<canvas id="lanes" width="{{.GlobalWidth}}" height="{{.GlobalHeight}}"></canvas>
<canvas id="hover" width="{{.GlobalWidth}}" height="{{.GlobalHeight}}"></canvas>
<div id="aux">
    <p>
        <label for="zoom"><strong>Zoom out:</strong></label>
        <input id="zoom" type="range" min="1" max="100" value="1">
        (<output for="zoom" id="zoom-val">1</output>&times;)
    </p>
    <p><strong>Start time:</strong> <span id="start-time"></span></p>
    <p><strong>End time:</strong> <span id="end-time"></span></p>
    <p><strong>Message:</strong><br/><span id="msg"></span></p>
</div>
<script>
var zoom = document.getElementById('zoom');
var globalWidth = {{.GlobalWidth}};
var globalHeight = {{.GlobalHeight}};
var laneWidth = {{.LaneWidth}};
var colors = {{.Colors}};
var blocks = {{.Blocks}};

function render(z) {
    var ctx = document.getElementById('lanes').getContext('2d');
    ctx.clearRect(0, 0, globalWidth, globalHeight);

    ctx.lineWidth = 1;
    ctx.font = 'sans-serif';
    ctx.textBaseline = 'top';
    ctx.textAlign = 'right';
    ctx.fillStyle = '#999';
    for (var i = 0; i < globalHeight; i += 300) {
        var notHour = i % 3600;
        var x = notHour ? 0.85 : 0.75;
        var y = Math.round(i * z) + 0.5;
        ctx.strokeStyle = notHour ? '#999' : '#333';
        ctx.beginPath();
        ctx.moveTo(globalWidth*x, y);
        ctx.lineTo(globalWidth, y);
        ctx.stroke();
        ctx.fillText((i/60|0) + 'm', globalWidth, y);
    }

    for (var i = 0, block; block = blocks[i]; ++ i) {
        ctx.fillStyle = colors[block.color];
        ctx.fillRect(
            block.lane * laneWidth,
            block.top * z,
            laneWidth - 1,
            block.height * z
        );
    }
}
document.addEventListener('DOMContentLoaded', function() {
    render(1);
});
zoom.addEventListener('input', function() {
    document.getElementById('zoom-val').value = zoom.value;
    render(1/zoom.value);
});

document.getElementById('hover').addEventListener('mousemove', function(e) {
    var rect = this.getBoundingClientRect();
    var z = 1/zoom.value;
    var xx = e.clientX - rect.left;
    var yy = e.clientY - rect.top;
    var x = xx / laneWidth;
    var y = yy / z;
    yy = Math.round(yy) + 0.5;

    var i = 0, block;
    for (; block = blocks[i]; ++ i) {
        if (
            block.top <= y && y <= block.top + block.height &&
            block.lane <= x && x <= block.lane + 1
        ) {
            break;
        }
    }
    if (i >= blocks.length) {
        i = -1;
    }

    var ctx = this.getContext('2d');
    ctx.clearRect(0, 0, globalWidth, globalHeight);

    ctx.strokeStyle = 'rgba(255,0,0,0.5)';
    ctx.lineWidth = 1;
    ctx.font = 'sans-serif';
    ctx.textBaseline = 'top';
    ctx.textAlign = 'left';
    ctx.fillStyle = '#f88';
    ctx.beginPath();
    ctx.moveTo(0, yy);
    ctx.lineTo(globalWidth, yy);
    ctx.stroke();
    ctx.fillText((y/60|0) + 'm' + (y%60|0) + 's', globalWidth * 0.85, yy);

    if (i !== -1) {
        var block = blocks[i];
        ctx.strokeStyle = '#000';
        ctx.strokeRect(
            block.lane * laneWidth,
            block.top * z,
            laneWidth - 1,
            block.height * z
        );
        document.getElementById('start-time').innerText = block.start;
        document.getElementById('end-time').innerText = block.end;
        document.getElementById('msg').innerText = block.msg;
    }
});
</script>
</body>
</html>
`
